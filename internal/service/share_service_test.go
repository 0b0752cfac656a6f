package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driveboxhq/drivebox/internal/domain"
)

func setupShareTest(t *testing.T) (*ShareServiceImpl, *fakeShareRepo, *fakeStorage, *domain.File) {
	t.Helper()

	fileRepo := newFakeFileRepo()
	shareRepo := &fakeShareRepo{}
	storage := newFakeStorage()

	fileSvc := NewFileService(fileRepo, storage, nopCache{})
	file, err := fileSvc.Upload(context.Background(), "user-a", []byte("content"), "report.pdf", "application/pdf")
	require.NoError(t, err)

	return NewShareService(fileRepo, shareRepo, storage), shareRepo, storage, file
}

func TestShareDefaultsToSevenDays(t *testing.T) {
	svc, _, _, file := setupShareTest(t)

	share, err := svc.Share(context.Background(), "user-a", file.ID, "x@y.com", 0)

	require.NoError(t, err)
	assert.Equal(t, share.CreatedAt.Add(7*24*time.Hour), share.ExpiresAt,
		"expiry must be exactly creation time plus the default window")
	assert.Equal(t, "x@y.com", share.SharedWith)
	assert.NotEmpty(t, share.ShareLink)
}

func TestShareHonorsRequestedWindow(t *testing.T) {
	svc, _, _, file := setupShareTest(t)

	share, err := svc.Share(context.Background(), "user-a", file.ID, "x@y.com", 3)

	require.NoError(t, err)
	assert.Equal(t, share.CreatedAt.Add(3*24*time.Hour), share.ExpiresAt)
}

func TestShareRejectsNegativeWindow(t *testing.T) {
	svc, _, storage, file := setupShareTest(t)
	before := storage.linkCalls

	_, err := svc.Share(context.Background(), "user-a", file.ID, "x@y.com", -1)

	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, before, storage.linkCalls)
}

func TestShareForbiddenForNonOwner(t *testing.T) {
	svc, shareRepo, storage, file := setupShareTest(t)
	before := storage.linkCalls

	_, err := svc.Share(context.Background(), "user-b", file.ID, "x@y.com", 0)

	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, before, storage.linkCalls, "no link may be minted for a non-owner")
	assert.Empty(t, shareRepo.shares)
}

func TestShareUnknownFile(t *testing.T) {
	svc, _, _, _ := setupShareTest(t)

	_, err := svc.Share(context.Background(), "user-a", "missing", "x@y.com", 0)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShareTwiceCreatesTwoRecords(t *testing.T) {
	svc, shareRepo, storage, file := setupShareTest(t)

	first, err := svc.Share(context.Background(), "user-a", file.ID, "x@y.com", 0)
	require.NoError(t, err)
	second, err := svc.Share(context.Background(), "user-a", file.ID, "x@y.com", 0)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, shareRepo.shares, 2)
	assert.Equal(t, 2, storage.linkCalls)
}

func TestListSharesOwnerGated(t *testing.T) {
	svc, _, _, file := setupShareTest(t)

	_, err := svc.Share(context.Background(), "user-a", file.ID, "x@y.com", 0)
	require.NoError(t, err)

	_, err = svc.ListShares(context.Background(), "user-b", file.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	shares, err := svc.ListShares(context.Background(), "user-a", file.ID)
	require.NoError(t, err)
	assert.Len(t, shares, 1)
}
