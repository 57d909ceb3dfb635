package testutil

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"
)

// MemoryCache is a map-backed cache.Cache for tests. TTLs are recorded
// but expiry is not simulated.
type MemoryCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration

	Gets int // number of Get calls, hits and misses
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *MemoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Gets++
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *MemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	delete(c.ttls, key)
	if ttl > 0 {
		c.ttls[key] = ttl
	}
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
		delete(c.ttls, k)
	}
	return nil
}

func (c *MemoryCache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.data[key]
	return ok
}

func (c *MemoryCache) Ping(context.Context) error { return nil }

// TTL reports the expiry recorded for key; false when the key never expires
func (c *MemoryCache) TTL(key string) (time.Duration, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ttl, ok := c.ttls[key]
	return ttl, ok
}

func (c *MemoryCache) Increment(_ context.Context, key string, window time.Duration) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	if raw, ok := c.data[key]; ok {
		if err := json.Unmarshal(raw, &n); err != nil {
			return 0, err
		}
	}
	n++
	c.data[key] = []byte(strconv.FormatInt(n, 10))
	if _, ok := c.ttls[key]; !ok && window > 0 {
		c.ttls[key] = window
	}
	return n, nil
}
