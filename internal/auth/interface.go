package auth

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/atriumlabs/atrium/backend/internal/user"
)

// TokenService handles JWT operations
type TokenService interface {
	GenerateAccessToken(u *user.User) (string, error)
	GenerateRefreshToken(u *user.User) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
}

// ResponseHandler handles HTTP responses
type ResponseHandler interface {
	SuccessResponse(c *gin.Context, data interface{}, message string)
	ErrorResponse(c *gin.Context, code int, message, detail string)
	HandleError(c *gin.Context, err error)
}

// Logger interface for logging operations
type Logger interface {
	LogInfo(msg string, fields map[string]interface{})
	LogError(err error, msg string) error
	LogWarn(message string, fields map[string]interface{})
}

// EventPublisher publishes user lifecycle events to the event bus
type EventPublisher interface {
	PublishUserEvent(ctx context.Context, eventType string, userID uuid.UUID, payload map[string]interface{}) error
}
