package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/driveboxhq/drivebox/internal/domain"
	"github.com/oklog/ulid/v2"
)

const (
	fileListCacheTTL = 5 * time.Minute
)

// FileServiceImpl implements domain.FileService
type FileServiceImpl struct {
	files   domain.FileRepository
	storage domain.BlobStorage
	cache   domain.CacheRepository
}

// NewFileService creates a new file service
func NewFileService(
	files domain.FileRepository,
	storage domain.BlobStorage,
	cache domain.CacheRepository,
) *FileServiceImpl {
	return &FileServiceImpl{
		files:   files,
		storage: storage,
		cache:   cache,
	}
}

// Upload pushes content to the blob store and records the file metadata.
// Validation happens before any storage call. If the metadata write fails
// after a successful upload, the stored object is deleted best-effort so
// the two side effects stay consistent.
func (s *FileServiceImpl) Upload(ctx context.Context, ownerID string, content []byte, filename, mimeType string) (*domain.File, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("%w: no file content provided", domain.ErrValidation)
	}
	if filename == "" {
		return nil, fmt.Errorf("%w: filename must not be empty", domain.ErrValidation)
	}
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	// Key the object under owner and a fresh ULID so identical filenames
	// never collide in the bucket
	key := fmt.Sprintf("%s/%s/%s", ownerID, ulid.Make().String(), filename)

	storageKey, err := s.storage.Upload(ctx, content, key, mimeType)
	if err != nil {
		return nil, fmt.Errorf("%w: blob upload failed: %v", domain.ErrUpstream, err)
	}

	now := time.Now().UTC()
	file := &domain.File{
		Filename:   filename,
		StorageKey: storageKey,
		MimeType:   mimeType,
		Size:       int64(len(content)),
		OwnerID:    ownerID,
		CreatedAt:  now,
	}

	if err := s.files.Create(ctx, file); err != nil {
		// Compensate: the object is already in the store, remove it so it
		// doesn't orphan. A failed compensation is logged, never swallowed.
		if delErr := s.storage.Delete(ctx, storageKey); delErr != nil {
			log.Printf("Warning: failed to delete orphaned object %s after metadata write failure: %v", storageKey, delErr)
		}
		return nil, fmt.Errorf("%w: metadata write failed: %v", domain.ErrUpstream, err)
	}

	// Listing cache is now stale; invalidation failure is non-fatal
	if err := s.cache.InvalidateFileList(ctx, ownerID); err != nil {
		log.Printf("Warning: failed to invalidate file list cache for %s: %v", ownerID, err)
	}

	return file, nil
}

// Download returns the file content together with its metadata after
// checking that userID owns the record.
func (s *FileServiceImpl) Download(ctx context.Context, userID, fileID string) ([]byte, *domain.File, error) {
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}

	if !file.OwnedBy(userID) {
		return nil, nil, domain.ErrForbidden
	}

	content, err := s.storage.Download(ctx, file.StorageKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: blob download failed: %v", domain.ErrUpstream, err)
	}

	return content, file, nil
}

// List returns all files owned by userID, newest first
func (s *FileServiceImpl) List(ctx context.Context, userID string) ([]*domain.File, error) {
	cached, err := s.cache.GetFileList(ctx, userID)
	if err != nil {
		log.Printf("Warning: file list cache read failed for %s: %v", userID, err)
	}
	if cached != nil {
		return cached, nil
	}

	files, err := s.files.GetByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing files failed: %v", domain.ErrUpstream, err)
	}

	if err := s.cache.SetFileList(ctx, userID, files, fileListCacheTTL); err != nil {
		log.Printf("Warning: failed to cache file list for %s: %v", userID, err)
	}

	return files, nil
}
