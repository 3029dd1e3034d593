package respond

import (
	"github.com/gin-gonic/gin"

	"careerlaunch-backend/internal/shared/telemetry"
)

// ErrorBody is the error payload written for every failed request.
type ErrorBody struct {
	Detail string `json:"detail"`
	Code   string `json:"code"`
}

// Error logs the failure and aborts the request with a standardized body.
func Error(c *gin.Context, status int, code, detail string) {
	fields := map[string]any{
		"status":     status,
		"code":       code,
		"detail":     detail,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if userID := c.GetString("userId"); userID != "" {
		fields["user_id"] = userID
	}
	telemetry.Error("http.error", fields)

	c.AbortWithStatusJSON(status, ErrorBody{Detail: detail, Code: code})
}
