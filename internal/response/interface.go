package response

import (
	"github.com/gin-gonic/gin"
)

// Handler defines the interface for rendering API responses. Handlers
// and middleware go through it so that every response leaving the
// server is one of the three envelope shapes.
type Handler interface {
	SuccessResponse(c *gin.Context, data interface{}, message string)
	PageResponse(c *gin.Context, items interface{}, total int64, page, size int)
	ErrorResponse(c *gin.Context, code int, message, detail string)
	HandleError(c *gin.Context, err error)
}

// Logger interface for logging operations
type Logger interface {
	LogWarn(message string, fields map[string]interface{})
	LogError(err error, msg string) error
}
