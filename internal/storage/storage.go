package storage

import (
	"context"
	"io"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the interface for object storage operations.
// Uploads are atomic from the caller's point of view: either Upload returns
// nil and PublicURL yields a usable URL, or the whole save operation aborts
// and no record referencing the object is persisted.
type FileStorage interface {
	// Upload writes an object to storage under the given key.
	Upload(ctx context.Context, objectKey string, contentType string, body io.Reader) error

	// PublicURL returns the permanent public URL for an object key. It does
	// not verify that the object exists.
	PublicURL(objectKey string) string

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET
	// requests for downloading/viewing an object directly from the provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)

	// DeleteObject removes an object from the storage provider.
	DeleteObject(ctx context.Context, objectKey string) error
}
