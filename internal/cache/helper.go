package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"azeyco/internal/middleware"

	"github.com/redis/go-redis/v9"
)

const (
	// UserTTL is how long a cached user entry lives.
	UserTTL = 15 * time.Minute
	// PostTTL is how long a cached post entry lives.
	PostTTL = 5 * time.Minute
)

// UserKey returns the cache key for a user ID.
func UserKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// PostKey returns the cache key for a post ID.
func PostKey(id uint) string {
	return fmt.Sprintf("post:%d", id)
}

// GetJSON fetches key and unmarshals it into dest. Returns false when the
// key is absent, caching is disabled, or the entry cannot be decoded.
func GetJSON(ctx context.Context, key string, dest any) bool {
	if client == nil {
		return false
	}
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			middleware.Logger.WarnContext(ctx, "cache read failed", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		middleware.Logger.WarnContext(ctx, "cache entry corrupt, dropping", "key", key, "error", err)
		client.Del(ctx, key)
		return false
	}
	return true
}

// SetJSON marshals value and stores it under key with the given TTL.
// Failures are logged and otherwise ignored.
func SetJSON(ctx context.Context, key string, value any, ttl time.Duration) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "cache marshal failed", "key", key, "error", err)
		return
	}
	if err := client.Set(ctx, key, raw, ttl).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "cache write failed", "key", key, "error", err)
	}
}

// Aside implements the cache-aside pattern: return the cached value under
// key when present, otherwise run load (which must fill dest) and cache the
// result. Load errors are returned uncached.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, load func() error) error {
	if GetJSON(ctx, key, dest) {
		return nil
	}
	if err := load(); err != nil {
		return err
	}
	SetJSON(ctx, key, dest, ttl)
	return nil
}

// Delete removes keys from the cache. Used for invalidation after writes.
func Delete(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	if err := client.Del(ctx, keys...).Err(); err != nil {
		middleware.Logger.WarnContext(ctx, "cache invalidation failed", "keys", keys, "error", err)
	}
}

// InvalidateUser drops the cached entry for a user.
func InvalidateUser(ctx context.Context, id uint) {
	Delete(ctx, UserKey(id))
}

// InvalidatePost drops the cached entry for a post.
func InvalidatePost(ctx context.Context, id uint) {
	Delete(ctx, PostKey(id))
}
