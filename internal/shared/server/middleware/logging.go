package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"interview-coach/internal/shared/telemetry"
)

const (
	userEmailKey = "userEmail"
	jobSourceKey = "jobSource"
)

// SetUserEmail records the caller's email for the request log line.
func SetUserEmail(c *gin.Context, email string) {
	if email != "" {
		c.Set(userEmailKey, email)
	}
}

// SetJobSource records which job source answered the request.
func SetJobSource(c *gin.Context, source string) {
	c.Set(jobSourceKey, source)
}

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

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       c.FullPath(),
			"status":      c.Writer.Status(),
			"duration_ms": float64(latency.Microseconds()) / 1000.0,
			"client_ip":   c.ClientIP(),
			"user_agent":  c.Request.UserAgent(),
		}
		if email := c.GetString(userEmailKey); email != "" {
			fields["user_email"] = email
		}
		if source := c.GetString(jobSourceKey); source != "" {
			fields["job_source"] = source
		}
		telemetry.Info("request.complete", fields)
	}
}
