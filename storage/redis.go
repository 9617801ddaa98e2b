package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisStorage keeps values as plain Redis strings without expiry
type RedisStorage struct {
	client *redis.Client
}

// NewRedisStorage creates a client; the connection is established lazily
func NewRedisStorage(opts *redis.Options) *RedisStorage {
	return &RedisStorage{client: redis.NewClient(opts)}
}

// Get reads key, mapping redis.Nil to ErrNotFound
func (r *RedisStorage) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s from redis: %w", key, err)
	}
	return data, nil
}

// Set writes key without expiry
func (r *RedisStorage) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s in redis: %w", key, err)
	}
	return nil
}

// Ping sends PING to the server
func (r *RedisStorage) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close closes the client connection pool
func (r *RedisStorage) Close() error {
	return r.client.Close()
}
