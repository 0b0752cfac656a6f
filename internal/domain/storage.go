package domain

import (
	"context"
	"time"
)

// BlobStorage defines the interface to the external object store holding
// file content. Implementations are injected into the workflows; nothing
// in the codebase holds a package-level storage handle.
type BlobStorage interface {
	// Upload stores content under key and returns the storage reference
	Upload(ctx context.Context, content []byte, key string, contentType string) (string, error)

	// Download fetches the content stored under the given reference
	Download(ctx context.Context, key string) ([]byte, error)

	// CreateShareLink returns a URL granting read access to the stored
	// content for the given validity window
	CreateShareLink(ctx context.Context, key string, validity time.Duration) (string, error)

	// Delete removes the stored content. Used as the compensating action
	// when a metadata write fails after a successful upload.
	Delete(ctx context.Context, key string) error
}
