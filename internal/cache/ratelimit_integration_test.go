//go:build integration

package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/taskvault/taskvault/internal/testutil"
)

func newCacheTestEnv(t *testing.T) (context.Context, *Cache) {
	t.Helper()

	ctx := context.Background()
	redisURL := testutil.RequireEnv(t, "REDIS_URL")

	cacheClient, err := New(ctx, redisURL)
	if err != nil {
		t.Skipf("Skipping integration test: Redis not available: %v", err)
	}
	t.Cleanup(func() {
		_ = cacheClient.Close()
	})

	if err := testutil.FlushRedis(ctx, cacheClient.Client()); err != nil {
		t.Fatalf("flush redis: %v", err)
	}

	return ctx, cacheClient
}

func TestIntegrationAuthRateLimit_BurstExhaustion(t *testing.T) {
	ctx, cacheClient := newCacheTestEnv(t)

	const (
		rps   = 1
		burst = 5
	)

	allowed := 0
	for i := 0; i < burst*2; i++ {
		result, err := cacheClient.CheckAuthRateLimit(ctx, "203.0.113.7", rps, burst)
		if err != nil {
			t.Fatalf("CheckAuthRateLimit failed: %v", err)
		}
		if result.Allowed {
			allowed++
		} else if result.RetryAfter <= 0 {
			t.Error("rejected request should carry a positive RetryAfter")
		}
	}

	// Refill can admit at most one extra token during the loop.
	if allowed < burst || allowed > burst+1 {
		t.Errorf("expected roughly the burst (%d) to be allowed, got %d", burst, allowed)
	}

	// A different address has its own untouched bucket.
	result, err := cacheClient.CheckAuthRateLimit(ctx, "203.0.113.8", rps, burst)
	if err != nil {
		t.Fatalf("CheckAuthRateLimit failed: %v", err)
	}
	if !result.Allowed {
		t.Error("a fresh address should start with a full bucket")
	}
}

// TestIntegrationAuthRateLimit_Concurrency verifies the bucket stays atomic
// under concurrent load. This test requires Redis to be running.
func TestIntegrationAuthRateLimit_Concurrency(t *testing.T) {
	ctx, cacheClient := newCacheTestEnv(t)

	const (
		rps   = 2
		burst = 5
	)

	var allowed, rejected int64

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 3; j++ {
				result, err := cacheClient.CheckAuthRateLimit(ctx, "203.0.113.9", rps, burst)
				if err != nil {
					t.Errorf("CheckAuthRateLimit error: %v", err)
					return
				}
				if result.Allowed {
					atomic.AddInt64(&allowed, 1)
				} else {
					atomic.AddInt64(&rejected, 1)
				}
			}
		}()
	}

	wg.Wait()

	total := allowed + rejected
	t.Logf("Concurrency test: %d allowed, %d rejected (total: %d)", allowed, rejected, total)

	// 60 rapid attempts against a 5-token bucket refilling at 2/s: the script
	// must never admit more than burst plus a brief refill window.
	if allowed > int64(burst+rps*2) {
		t.Errorf("Too many requests allowed: %d (expected <= %d)", allowed, burst+rps*2)
	}
	if rejected == 0 {
		t.Error("expected some requests to be rejected")
	}
}

func TestIntegrationReadyFlag_RoundTrip(t *testing.T) {
	ctx, cacheClient := newCacheTestEnv(t)

	if _, err := cacheClient.GetReadyFlag(ctx); err != ErrCacheMiss {
		t.Errorf("expected ErrCacheMiss on an empty cache, got: %v", err)
	}

	if err := cacheClient.SetReadyFlag(ctx, true); err != nil {
		t.Fatalf("SetReadyFlag failed: %v", err)
	}

	ready, err := cacheClient.GetReadyFlag(ctx)
	if err != nil {
		t.Fatalf("GetReadyFlag failed: %v", err)
	}
	if !ready {
		t.Error("cached verdict should read back as ready")
	}
}
