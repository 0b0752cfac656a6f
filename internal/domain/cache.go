package domain

import (
	"context"
	"time"
)

// CacheRepository caches per-user file listings. Cache failures are never
// fatal to a request; callers log and continue.
type CacheRepository interface {
	SetFileList(ctx context.Context, userID string, files []*File, ttl time.Duration) error

	// GetFileList returns the cached listing, or nil on a cache miss
	GetFileList(ctx context.Context, userID string) ([]*File, error)

	InvalidateFileList(ctx context.Context, userID string) error
}
