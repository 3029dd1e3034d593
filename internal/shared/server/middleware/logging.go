package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"careerlaunch-backend/internal/shared/telemetry"
)

// Context keys handlers may set to enrich the request log.
const (
	TaskKey     = "task"
	ResumeIDKey = "resumeId"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		userID, _ := c.Get(userIDKey)
		task, _ := c.Get(TaskKey)
		resumeID, _ := c.Get(ResumeIDKey)

		telemetry.Info("request.complete", map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"user_id":     userID,
			"task":        task,
			"resume_id":   resumeID,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		})
	}
}
