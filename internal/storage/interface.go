package storage

import (
	"context"
	"io"
	"time"
)

//go:generate mockgen -destination=mocks/mock_storage.go -package=mocks hackreg/internal/storage Storage

// Storage defines the interface for object storage operations.
type Storage interface {
	// PutObject uploads an object to storage.
	PutObject(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	// GetPresignedURL generates a pre-signed URL for downloading an object.
	GetPresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	// PublicURL returns a stable URL for key when the bucket is publicly served.
	PublicURL(key string) (string, bool)
}

// Ensure S3Client implements Storage interface
var _ Storage = (*S3Client)(nil)
