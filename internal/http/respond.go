package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/khirotaka/toolfault/pkg/toolerr"
)

// respondError writes a failed response in the shared envelope and stops the
// handler chain. The status code is derived from the error code, so every
// producer of the same code answers with the same status.
func respondError(c *gin.Context, e *toolerr.Error) {
	status := e.Code().HTTPStatus()
	if status >= 500 {
		slog.Error("Request failed", "error", e, "path", c.Request.URL.Path)
	} else {
		slog.Warn("Request rejected", "error", e, "path", c.Request.URL.Path)
	}

	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   e.Payload(),
	})
}
