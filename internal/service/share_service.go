package service

import (
	"context"
	"fmt"
	"time"

	"github.com/driveboxhq/drivebox/internal/domain"
)

// ShareServiceImpl implements domain.ShareService
type ShareServiceImpl struct {
	files   domain.FileRepository
	shares  domain.FileShareRepository
	storage domain.BlobStorage
}

// NewShareService creates a new share service
func NewShareService(
	files domain.FileRepository,
	shares domain.FileShareRepository,
	storage domain.BlobStorage,
) *ShareServiceImpl {
	return &ShareServiceImpl{
		files:   files,
		shares:  shares,
		storage: storage,
	}
}

// Share creates a share link for a file the user owns and records the
// grant. Each call produces its own row and its own link; shares are not
// deduplicated.
func (s *ShareServiceImpl) Share(ctx context.Context, userID, fileID, email string, expiresInDays int) (*domain.FileShare, error) {
	if expiresInDays < 0 {
		return nil, fmt.Errorf("%w: expires_in_days must not be negative", domain.ErrValidation)
	}
	if expiresInDays == 0 {
		expiresInDays = domain.DefaultShareValidityDays
	}

	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if !file.OwnedBy(userID) {
		return nil, domain.ErrForbidden
	}

	validity := time.Duration(expiresInDays) * 24 * time.Hour

	link, err := s.storage.CreateShareLink(ctx, file.StorageKey, validity)
	if err != nil {
		return nil, fmt.Errorf("%w: share link creation failed: %v", domain.ErrUpstream, err)
	}

	// ExpiresAt is derived from the same instant as CreatedAt so the
	// expiry invariant holds exactly
	now := time.Now().UTC()
	share := &domain.FileShare{
		FileID:     file.ID,
		SharedWith: email,
		ShareLink:  link,
		CreatedAt:  now,
		ExpiresAt:  now.Add(validity),
	}

	if err := s.shares.Create(ctx, share); err != nil {
		return nil, fmt.Errorf("%w: share record write failed: %v", domain.ErrUpstream, err)
	}

	return share, nil
}

// ListShares returns the share records of a file the user owns
func (s *ShareServiceImpl) ListShares(ctx context.Context, userID, fileID string) ([]*domain.FileShare, error) {
	file, err := s.files.GetByID(ctx, fileID)
	if err != nil {
		return nil, err
	}

	if !file.OwnedBy(userID) {
		return nil, domain.ErrForbidden
	}

	shares, err := s.shares.GetByFileID(ctx, file.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing shares failed: %v", domain.ErrUpstream, err)
	}

	return shares, nil
}
