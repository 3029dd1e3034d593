package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the success wrapper shared by most routes.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// Success writes a 200 envelope with status "success".
func Success(c *gin.Context, message string, data any) {
	OK(c, Envelope{Status: "success", Message: message, Data: data})
}
