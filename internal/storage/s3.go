package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	miniocreds "github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/atriumlabs/atrium/backend/internal/config"
)

// S3Service implements the Service interface against any S3-compatible
// endpoint (MinIO in development).
type S3Service struct {
	client   *minio.Client
	bucket   string
	endpoint string
	useSSL   bool
	logger   Logger
}

// NewS3Service creates a new object storage service instance
func NewS3Service(cfg *config.S3Config, logger Logger) (*S3Service, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  miniocreds.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %v", err)
	}

	return &S3Service{
		client:   client,
		bucket:   cfg.Bucket,
		endpoint: cfg.Endpoint,
		useSSL:   cfg.UseSSL,
		logger:   logger,
	}, nil
}

// EnsureBucket creates the configured bucket if it does not exist
func (s *S3Service) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket: %v", err)
	}
	if exists {
		return nil
	}

	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %v", err)
	}

	s.logger.LogInfo("Created storage bucket", map[string]interface{}{
		"bucket": s.bucket,
	})
	return nil
}

// UploadStream uploads a stream to object storage and returns the
// object URL
func (s *S3Service) UploadStream(ctx context.Context, key string, reader io.Reader, size int64, contentType string) (string, error) {
	result, err := s.client.PutObject(ctx, s.bucket, key, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload object: %v", err)
	}

	if result.Location != "" {
		return result.Location, nil
	}
	return s.objectURL(key), nil
}

// PresignedURL returns a time-limited download URL for an object
func (s *S3Service) PresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, key, expiry, url.Values{})
	if err != nil {
		return "", fmt.Errorf("failed to presign object: %v", err)
	}
	return u.String(), nil
}

// Remove deletes an object from storage
func (s *S3Service) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to remove object: %v", err)
	}
	return nil
}

func (s *S3Service) objectURL(key string) string {
	scheme := "http"
	if s.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.endpoint, s.bucket, key)
}
