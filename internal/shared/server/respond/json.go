package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes payload as the response body. A nil payload is written as an
// empty object so clients always receive a JSON object.
func JSON(c *gin.Context, status int, payload any) {
	if payload == nil {
		payload = gin.H{}
	}
	c.JSON(status, payload)
}

// OK is JSON with status 200, used by every successful domain endpoint.
func OK(c *gin.Context, payload any) {
	JSON(c, http.StatusOK, payload)
}
