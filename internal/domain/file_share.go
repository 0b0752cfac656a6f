package domain

import (
	"context"
	"time"
)

// DefaultShareValidityDays is the share validity window applied when the
// caller does not specify one.
const DefaultShareValidityDays = 7

// FileShare records a grant of access to a file. ExpiresAt is always
// CreatedAt plus the requested validity window. The expiry is advisory
// metadata: nothing reaps expired rows, and the link itself is governed
// by the blob store.
type FileShare struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	FileID     string    `bson:"file_id" json:"file_id"`
	SharedWith string    `bson:"shared_with" json:"shared_with"` // recipient email, not validated
	ShareLink  string    `bson:"share_link" json:"share_link"`
	ExpiresAt  time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// IsExpired reports whether the share's validity window has passed.
func (s *FileShare) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// FileShareRepository defines persistence for share records
type FileShareRepository interface {
	// Create saves a new share record
	Create(ctx context.Context, share *FileShare) error

	// GetByFileID retrieves all shares of a file, newest first
	GetByFileID(ctx context.Context, fileID string) ([]*FileShare, error)
}

// ShareService creates and lists share grants
type ShareService interface {
	// Share creates a share link for a file the user owns. A zero
	// expiresInDays selects the default validity window; negative values
	// are rejected.
	Share(ctx context.Context, userID, fileID, email string, expiresInDays int) (*FileShare, error)

	// ListShares returns the share records of a file the user owns.
	ListShares(ctx context.Context, userID, fileID string) ([]*FileShare, error)
}
