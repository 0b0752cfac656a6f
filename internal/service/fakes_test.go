package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/driveboxhq/drivebox/internal/domain"
)

// fakeFileRepo is an in-memory domain.FileRepository
type fakeFileRepo struct {
	files     map[string]*domain.File
	nextID    int
	createErr error
}

func newFakeFileRepo() *fakeFileRepo {
	return &fakeFileRepo{files: make(map[string]*domain.File)}
}

func (r *fakeFileRepo) Create(_ context.Context, f *domain.File) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.nextID++
	if f.ID == "" {
		f.ID = fmt.Sprintf("file-%d", r.nextID)
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	cp := *f
	r.files[f.ID] = &cp
	return nil
}

func (r *fakeFileRepo) GetByID(_ context.Context, id string) (*domain.File, error) {
	f, ok := r.files[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

func (r *fakeFileRepo) GetByOwner(_ context.Context, ownerID string) ([]*domain.File, error) {
	var out []*domain.File
	for _, f := range r.files {
		if f.OwnerID == ownerID {
			cp := *f
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

// fakeShareRepo is an in-memory domain.FileShareRepository
type fakeShareRepo struct {
	shares    []*domain.FileShare
	createErr error
}

func (r *fakeShareRepo) Create(_ context.Context, s *domain.FileShare) error {
	if r.createErr != nil {
		return r.createErr
	}
	if s.ID == "" {
		s.ID = fmt.Sprintf("share-%d", len(r.shares)+1)
	}
	cp := *s
	r.shares = append(r.shares, &cp)
	return nil
}

func (r *fakeShareRepo) GetByFileID(_ context.Context, fileID string) ([]*domain.FileShare, error) {
	var out []*domain.FileShare
	for _, s := range r.shares {
		if s.FileID == fileID {
			cp := *s
			out = append(out, &cp)
		}
	}
	return out, nil
}

// fakeStorage is an in-memory domain.BlobStorage that counts calls, so
// tests can assert that validation failures never reach the store.
type fakeStorage struct {
	objects map[string][]byte

	uploadCalls   int
	downloadCalls int
	linkCalls     int
	deleteCalls   int

	uploadErr   error
	downloadErr error
	linkErr     error
	deleteErr   error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (s *fakeStorage) Upload(_ context.Context, content []byte, key, _ string) (string, error) {
	s.uploadCalls++
	if s.uploadErr != nil {
		return "", s.uploadErr
	}
	buf := make([]byte, len(content))
	copy(buf, content)
	s.objects[key] = buf
	return key, nil
}

func (s *fakeStorage) Download(_ context.Context, key string) ([]byte, error) {
	s.downloadCalls++
	if s.downloadErr != nil {
		return nil, s.downloadErr
	}
	content, ok := s.objects[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return content, nil
}

func (s *fakeStorage) CreateShareLink(_ context.Context, key string, validity time.Duration) (string, error) {
	s.linkCalls++
	if s.linkErr != nil {
		return "", s.linkErr
	}
	return fmt.Sprintf("https://blob.test/%s?expires=%d", key, int(validity.Seconds())), nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	s.deleteCalls++
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.objects, key)
	return nil
}

// fakeUserRepo is an in-memory domain.UserRepository
type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	r.nextID++
	if u.ID == "" {
		u.ID = fmt.Sprintf("user-%d", r.nextID)
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeUserRepo) GetByFirebaseUID(_ context.Context, uid string) (*domain.User, error) {
	for _, u := range r.users {
		if u.FirebaseUID == uid {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

// fakeRefreshTokenRepo is an in-memory domain.RefreshTokenRepository keyed
// by token hash, mirroring the Mongo repo's revoked filter on lookup.
type fakeRefreshTokenRepo struct {
	tokens map[string]*domain.RefreshToken
	nextID int
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: make(map[string]*domain.RefreshToken)}
}

func (r *fakeRefreshTokenRepo) Create(_ context.Context, t *domain.RefreshToken) error {
	r.nextID++
	if t.ID == "" {
		t.ID = fmt.Sprintf("token-%d", r.nextID)
	}
	cp := *t
	r.tokens[t.TokenHash] = &cp
	return nil
}

func (r *fakeRefreshTokenRepo) FindByHash(_ context.Context, hash string) (*domain.RefreshToken, error) {
	t, ok := r.tokens[hash]
	if !ok || t.Revoked {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *fakeRefreshTokenRepo) RevokeByHash(_ context.Context, hash string) error {
	if t, ok := r.tokens[hash]; ok {
		t.Revoked = true
	}
	return nil
}

func (r *fakeRefreshTokenRepo) RevokeAllByUserID(_ context.Context, userID string) error {
	for _, t := range r.tokens {
		if t.UserID == userID {
			t.Revoked = true
		}
	}
	return nil
}

func (r *fakeRefreshTokenRepo) activeCount() int {
	n := 0
	for _, t := range r.tokens {
		if !t.Revoked {
			n++
		}
	}
	return n
}

// nopCache is a domain.CacheRepository that never hits
type nopCache struct{}

func (nopCache) SetFileList(context.Context, string, []*domain.File, time.Duration) error {
	return nil
}

func (nopCache) GetFileList(context.Context, string) ([]*domain.File, error) {
	return nil, nil
}

func (nopCache) InvalidateFileList(context.Context, string) error {
	return nil
}

// recordingCache stores listings in memory like the real Redis cache
type recordingCache struct {
	lists       map[string][]*domain.File
	invalidates int
}

func newRecordingCache() *recordingCache {
	return &recordingCache{lists: make(map[string][]*domain.File)}
}

func (c *recordingCache) SetFileList(_ context.Context, userID string, files []*domain.File, _ time.Duration) error {
	c.lists[userID] = files
	return nil
}

func (c *recordingCache) GetFileList(_ context.Context, userID string) ([]*domain.File, error) {
	return c.lists[userID], nil
}

func (c *recordingCache) InvalidateFileList(_ context.Context, userID string) error {
	c.invalidates++
	delete(c.lists, userID)
	return nil
}
