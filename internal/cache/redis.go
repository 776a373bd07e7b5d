// Package cache provides Redis access for rate limiting and short-lived
// derived state such as the readiness verdict.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache wraps a Redis client.
type Cache struct {
	client *redis.Client
}

// New connects to Redis and verifies the connection before returning.
func New(ctx context.Context, redisURL string) (*Cache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	// Traffic here is limiter checks and probe reads, so the pool stays small.
	opt.PoolSize = 8
	opt.MinIdleConns = 1
	opt.PoolTimeout = 3 * time.Second
	opt.ConnMaxIdleTime = 10 * time.Minute

	client := redis.NewClient(opt)

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}

	return &Cache{client: client}, nil
}

// Ping checks Redis connectivity.
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Close closes the Redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}

// Client exposes the underlying client for tests and tooling.
// Application code should go through Cache methods instead.
func (c *Cache) Client() *redis.Client {
	return c.client
}
