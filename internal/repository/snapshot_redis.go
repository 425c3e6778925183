package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/shikshahq/school-console-api/internal/store"
)

const redisSnapshotPrefix = "console:snapshot:"

// RedisSnapshotRepository stores each snapshot blob under one Redis key.
type RedisSnapshotRepository struct {
	client *redis.Client
}

// NewRedisSnapshotRepository builds a Redis-backed snapshot repository.
func NewRedisSnapshotRepository(client *redis.Client) *RedisSnapshotRepository {
	return &RedisSnapshotRepository{client: client}
}

// Load reads the blob for key, returning store.ErrNotFound when absent.
func (r *RedisSnapshotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, redisSnapshotPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("load snapshot %s: %w", key, err)
	}
	return data, nil
}

// Save writes the blob for key. Snapshots never expire.
func (r *RedisSnapshotRepository) Save(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, redisSnapshotPrefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("save snapshot %s: %w", key, err)
	}
	return nil
}
