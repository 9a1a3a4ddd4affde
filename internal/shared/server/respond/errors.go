package respond

import (
	"github.com/gin-gonic/gin"

	"interview-coach/internal/shared/telemetry"
)

// ErrorResponse is the error body returned by every endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error logs the failure and aborts with a JSON error body.
func Error(c *gin.Context, status int, message string) {
	fields := map[string]any{
		"status":     status,
		"message":    message,
		"path":       c.Request.URL.Path,
		"method":     c.Request.Method,
		"request_id": c.GetString("requestId"),
	}
	if status >= 500 {
		telemetry.Error("http.error", fields)
	} else {
		telemetry.Warn("http.error", fields)
	}

	c.AbortWithStatusJSON(status, ErrorResponse{Error: message})
}
