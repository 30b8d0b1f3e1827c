package embedding

import (
	"sync"
	"time"
)

// cache is a small in-memory TTL cache for embedding vectors keyed by text
// hash, adapted from the teacher's runbook cache (lazy expiry on read, no
// background sweep goroutine).
type cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
}

type cacheEntry struct {
	vector    []float32
	expiresAt time.Time
}

func newCache(ttl time.Duration) *cache {
	return &cache{entries: make(map[string]cacheEntry), ttl: ttl}
}

func (c *cache) get(key string) ([]float32, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false
	}
	return e.vector, true
}

func (c *cache) set(key string, vector []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{vector: vector, expiresAt: time.Now().Add(c.ttl)}
}
