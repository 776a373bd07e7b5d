package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	readyFlagKey = "health:ready"

	// ReadyFlagTTL bounds how stale a cached readiness verdict may be.
	ReadyFlagTTL = 5 * time.Second
)

// ErrCacheMiss is returned when a cached value is not present.
var ErrCacheMiss = errors.New("cache miss")

// GetReadyFlag returns the cached readiness verdict, if one is fresh.
func (c *Cache) GetReadyFlag(ctx context.Context) (bool, error) {
	val, err := c.client.Get(ctx, readyFlagKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, ErrCacheMiss
		}
		return false, err
	}
	return val == "ok", nil
}

// SetReadyFlag caches a readiness verdict for a short window so hot probe
// traffic does not hammer the database.
func (c *Cache) SetReadyFlag(ctx context.Context, ready bool) error {
	val := "ok"
	if !ready {
		val = "unhealthy"
	}
	return c.client.Set(ctx, readyFlagKey, val, ReadyFlagTTL).Err()
}
