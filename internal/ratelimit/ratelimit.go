package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CheckAndMark implements the SetNX marker: if a marker already exists
// for key the call is denied and the existing TTL is NOT refreshed; if
// absent, the marker is set with ttl and the call is allowed.
func CheckAndMark(ctx context.Context, rdb *redis.Client, key string, ttl time.Duration) (bool, error) {
	if rdb == nil {
		return true, nil
	}

	wasSet, err := rdb.SetNX(ctx, "rate_limit:"+key, "locked", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

// GetCachedBody returns the cached response body for key, or ok=false on
// a miss.
func GetCachedBody(ctx context.Context, rdb *redis.Client, key string) (string, bool, error) {
	if rdb == nil {
		return "", false, nil
	}

	val, err := rdb.Get(ctx, "response_cache:"+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to read response cache: %w", err)
	}
	return val, true, nil
}

// SetCachedBody stores a response body under key for ttl.
func SetCachedBody(ctx context.Context, rdb *redis.Client, key, body string, ttl time.Duration) error {
	if rdb == nil {
		return nil
	}
	return rdb.Set(ctx, "response_cache:"+key, body, ttl).Err()
}
