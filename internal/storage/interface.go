package storage

import (
	"context"
	"io"
	"time"
)

// Service defines the interface for object storage operations
type Service interface {
	EnsureBucket(ctx context.Context) error
	UploadStream(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error)
	PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	Remove(ctx context.Context, key string) error
}

// Logger interface for logging operations
type Logger interface {
	LogInfo(msg string, fields map[string]interface{})
	LogError(err error, msg string) error
}
