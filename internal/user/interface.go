package user

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ResponseHandler handles HTTP responses
type ResponseHandler interface {
	SuccessResponse(c *gin.Context, data interface{}, message string)
	PageResponse(c *gin.Context, items interface{}, total int64, page, size int)
	ErrorResponse(c *gin.Context, code int, message, detail string)
	HandleError(c *gin.Context, err error)
}

// Logger interface for logging operations
type Logger interface {
	LogInfo(msg string, fields map[string]interface{})
	LogError(err error, msg string) error
	LogWarn(message string, fields map[string]interface{})
	LogDebug(message string, fields map[string]interface{})
}

// EventPublisher publishes user lifecycle events to the event bus
type EventPublisher interface {
	PublishUserEvent(ctx context.Context, eventType string, userID uuid.UUID, payload map[string]interface{}) error
}

// ObjectStorage handles avatar uploads to object storage
type ObjectStorage interface {
	UploadStream(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
}
