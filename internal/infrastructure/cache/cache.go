package cache

import (
	"sync"
	"time"
)

type entry struct {
	value      interface{}
	expiration int64
}

// Cache is a small in-memory TTL cache. The admin dashboard polls the
// stats endpoint on a fixed interval, so serving a slightly stale
// aggregate is acceptable; writes invalidate eagerly.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
}

func New() *Cache {
	c := &Cache{
		entries: make(map[string]entry),
	}

	// Sweep expired entries in the background
	go func() {
		for {
			time.Sleep(time.Minute)
			c.deleteExpired()
		}
	}()

	return c
}

func (c *Cache) Set(key string, value interface{}, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:      value,
		expiration: time.Now().Add(ttl).UnixNano(),
	}
}

// Get returns the cached value for key, or false when the key is
// missing or past its TTL.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, found := c.entries[key]
	if !found || time.Now().UnixNano() > e.expiration {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

func (c *Cache) deleteExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UnixNano()
	for k, e := range c.entries {
		if now > e.expiration {
			delete(c.entries, k)
		}
	}
}
