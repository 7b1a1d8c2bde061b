package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mvoronin/authgate/internal/models"
)

// Redis is the Cache implementation for deployments where several
// processes share one identity cache. Records travel as JSON.
type Redis struct {
	client *redis.Client
}

// NewRedis builds a Redis cache from a redis URL
// (e.g. "redis://localhost:6379/0") and verifies the connection.
func NewRedis(ctx context.Context, url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Redis{client: client}, nil
}

func (r *Redis) Get(ctx context.Context, key string) (*models.UserRecord, bool, error) {
	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	rec := &models.UserRecord{}
	if err := json.Unmarshal(raw, rec); err != nil {
		return nil, false, fmt.Errorf("decode cached record: %w", err)
	}
	return rec, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, rec *models.UserRecord, ttl time.Duration) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode record: %w", err)
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := r.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
