package tests

import (
	"context"
	"fmt"
	"log"
	"sync"
	"testing"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/testcontainers/testcontainers-go/modules/mongodb"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SetupTestDB spins up a fresh MongoDB container and returns the database connection
// along with a cleanup function.
func SetupTestDB(t *testing.T) (*mongo.Database, func()) {
	ctx := context.Background()

	mongodbContainer, err := mongodb.Run(ctx, "mongo:latest")
	if err != nil {
		t.Fatalf("failed to start container: %s", err)
	}

	endpoint, err := mongodbContainer.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("failed to get connection string: %s", err)
	}

	mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(endpoint))
	if err != nil {
		t.Fatalf("failed to connect to mongo: %v", err)
	}

	return mongoClient.Database("test_db"), func() {
		if err := mongoClient.Disconnect(ctx); err != nil {
			log.Printf("failed to disconnect mongo: %v", err)
		}
		if err := mongodbContainer.Terminate(ctx); err != nil {
			log.Printf("failed to terminate container: %v", err)
		}
	}
}

// MockAuthClient implements service.FirebaseAuthClient for testing
type MockAuthClient struct {
	// Key: ID token presented in the Authorization header
	// Value: what VerifyIDToken returns for it
	ValidTokens map[string]*auth.Token
}

func NewMockAuthClient() *MockAuthClient {
	return &MockAuthClient{
		ValidTokens: make(map[string]*auth.Token),
	}
}

func (m *MockAuthClient) VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error) {
	if token, ok := m.ValidTokens[idToken]; ok {
		return token, nil
	}
	return nil, fmt.Errorf("invalid mock token")
}

// AddMockUser registers a token that will verify as the given identity
func (m *MockAuthClient) AddMockUser(tokenString string, uid string, email string) {
	m.ValidTokens[tokenString] = &auth.Token{
		UID: uid,
		Claims: map[string]interface{}{
			"email": email,
		},
	}
}

// MemoryBlobStorage implements domain.BlobStorage in memory so the e2e
// flow runs without an object store. It counts uploads so tests can assert
// that rejected requests never touch storage.
type MemoryBlobStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	uploads int
}

func NewMemoryBlobStorage() *MemoryBlobStorage {
	return &MemoryBlobStorage{
		objects: make(map[string][]byte),
	}
}

func (s *MemoryBlobStorage) Upload(_ context.Context, content []byte, key string, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads++
	buf := make([]byte, len(content))
	copy(buf, content)
	s.objects[key] = buf
	return key, nil
}

func (s *MemoryBlobStorage) Download(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	content, ok := s.objects[key]
	if !ok {
		return nil, fmt.Errorf("object %s not found", key)
	}
	return content, nil
}

func (s *MemoryBlobStorage) CreateShareLink(_ context.Context, key string, validity time.Duration) (string, error) {
	return fmt.Sprintf("https://blob.test/%s?expires=%d", key, int(validity.Seconds())), nil
}

func (s *MemoryBlobStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// UploadCalls reports how many times Upload was invoked
func (s *MemoryBlobStorage) UploadCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploads
}
