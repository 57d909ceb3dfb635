package cache

import (
	"context"
	"time"
)

// Cache defines the contract for the cache layer.
// Implementations: Redis (infrastructure/cache) and Noop (no cache configured).
type Cache interface {
	// Get unmarshals the cached value into dest.
	// found = false on a cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value (JSON encoded) with a TTL
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error

	// Increment bumps a counter and gives it window as TTL whenever the key
	// has none, in one atomic step. Backs the failed-login counter.
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}
