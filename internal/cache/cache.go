// Package cache holds the process-local (or Redis-shared) user record
// cache consulted by the authority client. Entries are always replaced
// whole; last writer wins.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/mvoronin/authgate/internal/models"
)

// DefaultTTL bounds a cached user record unless the caller asks otherwise.
const DefaultTTL = 60 * time.Second

// Cache is a TTL-bound key to user-record mapping, safe for concurrent use.
// A ttl <= 0 means the entry never expires.
type Cache interface {
	Get(ctx context.Context, key string) (*models.UserRecord, bool, error)
	Set(ctx context.Context, key string, rec *models.UserRecord, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// UserKey returns the fixed cache key for a user id. Every path that reads,
// writes or invalidates a cached record must go through it.
func UserKey(id uint32) string {
	return fmt.Sprintf("user_id_%d", id)
}
