package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/driveboxhq/drivebox/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	fileListKeyPrefix = "user:files:"
)

// RedisCacheRepository implements domain.CacheRepository using Redis
type RedisCacheRepository struct {
	client *redis.Client
}

// NewRedisCacheRepository creates a new Redis cache repository
func NewRedisCacheRepository(client *redis.Client) *RedisCacheRepository {
	return &RedisCacheRepository{
		client: client,
	}
}

// SetFileList caches a user's file listing with TTL
func (r *RedisCacheRepository) SetFileList(ctx context.Context, userID string, files []*domain.File, ttl time.Duration) error {
	key := fileListKeyPrefix + userID

	data, err := json.Marshal(files)
	if err != nil {
		return fmt.Errorf("failed to marshal file list: %w", err)
	}

	if err := r.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache file list: %w", err)
	}

	return nil
}

// GetFileList retrieves the cached file listing for a user
// Returns nil on a cache miss
func (r *RedisCacheRepository) GetFileList(ctx context.Context, userID string) ([]*domain.File, error) {
	key := fileListKeyPrefix + userID

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // Cache miss
		}
		return nil, fmt.Errorf("failed to get cached file list: %w", err)
	}

	var files []*domain.File
	if err := json.Unmarshal(data, &files); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached file list: %w", err)
	}

	return files, nil
}

// InvalidateFileList removes the cached listing after an upload
func (r *RedisCacheRepository) InvalidateFileList(ctx context.Context, userID string) error {
	key := fileListKeyPrefix + userID

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate file list cache: %w", err)
	}

	return nil
}
