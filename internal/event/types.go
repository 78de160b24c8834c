package event

import (
	"time"

	"github.com/google/uuid"
)

// UserEvent is the message published on user lifecycle changes
// (registration, profile update, deletion).
type UserEvent struct {
	ID         uuid.UUID              `json:"id"`
	Type       string                 `json:"type"`
	UserID     uuid.UUID              `json:"user_id"`
	OccurredAt time.Time              `json:"occurred_at"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}

// Logger interface for logging operations
type Logger interface {
	LogInfo(msg string, fields map[string]interface{})
	LogError(err error, msg string) error
	LogWarn(message string, fields map[string]interface{})
	LogDebug(message string, fields map[string]interface{})
}
