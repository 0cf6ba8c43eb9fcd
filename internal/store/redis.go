package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists the blob under a single Redis key.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedis wraps an existing client. The blob lives at "resuexpress:<key>".
func NewRedis(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: "resuexpress:" + key}
}

// NewRedisFromURL parses a redis:// URL and creates a store on a new client.
func NewRedisFromURL(url, key string) (*RedisStore, error) {
	if url == "" {
		return nil, fmt.Errorf("redis store requires REDIS_URL")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return NewRedis(redis.NewClient(opts), key), nil
}

func (r *RedisStore) Load(ctx context.Context) ([]byte, error) {
	b, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	return b, nil
}

func (r *RedisStore) Save(ctx context.Context, blob []byte) error {
	if err := r.client.Set(ctx, r.key, blob, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
