package domain

import (
	"context"
	"time"
)

// File represents one uploaded object. A record is written only after the
// blob store has confirmed the upload and is never mutated afterwards:
// the owner does not change and the size always equals the byte length
// that was actually uploaded.
type File struct {
	ID         string    `bson:"_id,omitempty" json:"id"`
	Filename   string    `bson:"filename" json:"filename"`
	StorageKey string    `bson:"storage_key" json:"-"` // blob store reference, never exposed
	MimeType   string    `bson:"mime_type" json:"mime_type"`
	Size       int64     `bson:"size" json:"size"`
	OwnerID    string    `bson:"owner_id" json:"owner_id"`
	CreatedAt  time.Time `bson:"created_at" json:"created_at"`
}

// OwnedBy reports whether userID owns this file. Ownership is the only
// authorization relation: download and share both gate on it.
func (f *File) OwnedBy(userID string) bool {
	return f.OwnerID == userID
}

// FileSummary is the projection returned by the listing endpoint.
type FileSummary struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
	MimeType  string    `json:"mime_type"`
}

// Summary projects a File to its listing representation.
func (f *File) Summary() FileSummary {
	return FileSummary{
		ID:        f.ID,
		Filename:  f.Filename,
		Size:      f.Size,
		CreatedAt: f.CreatedAt,
		MimeType:  f.MimeType,
	}
}

// FileRepository defines metadata persistence for files
type FileRepository interface {
	// Create saves a new file record
	Create(ctx context.Context, file *File) error

	// GetByID retrieves a file by id, returning ErrNotFound when absent
	GetByID(ctx context.Context, id string) (*File, error)

	// GetByOwner retrieves all files owned by a user, newest first
	GetByOwner(ctx context.Context, ownerID string) ([]*File, error)
}

// FileService orchestrates the file lifecycle: upload, download, listing
type FileService interface {
	Upload(ctx context.Context, ownerID string, content []byte, filename, mimeType string) (*File, error)
	Download(ctx context.Context, userID, fileID string) ([]byte, *File, error)
	List(ctx context.Context, userID string) ([]*File, error)
}
