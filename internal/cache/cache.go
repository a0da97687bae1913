package cache

import (
	"sync"
	"time"
)

type CacheItem struct {
	Value      interface{}
	Expiration int64
}

// Cache is a small TTL map. A zero TTL disables it: Set is a no-op and every
// lookup misses.
type Cache struct {
	items map[string]CacheItem
	mu    sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
	// gen counts invalidations; Delete bumps it.
	gen uint64
}

// New returns an empty cache whose items live for defaultTTL.
func New(defaultTTL time.Duration) *Cache {
	return &Cache{
		items: make(map[string]CacheItem),
		ttl:   defaultTTL,
		now:   time.Now,
	}
}

// Set stores value under key for the default TTL.
func (c *Cache) Set(key string, value interface{}) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.set(key, value)
}

// Generation returns the current invalidation count. Read it before loading a
// value and hand it to SetIfGeneration.
func (c *Cache) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// SetIfGeneration stores value only if nothing was deleted since gen was read,
// so a load that raced an invalidation cannot repopulate stale data.
func (c *Cache) SetIfGeneration(key string, value interface{}, gen uint64) bool {
	if c.ttl <= 0 {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen != gen {
		return false
	}
	c.set(key, value)
	return true
}

func (c *Cache) set(key string, value interface{}) {
	c.items[key] = CacheItem{
		Value:      value,
		Expiration: c.now().Add(c.ttl).UnixNano(),
	}
}

// GetValue returns the value under key unless it is missing or expired.
func (c *Cache) GetValue(key string) (interface{}, bool) {
	c.mu.RLock()
	item, found := c.items[key]
	c.mu.RUnlock()

	if !found {
		return nil, false
	}

	if c.now().UnixNano() > item.Expiration {
		// expiry is not an invalidation, the generation stays put
		c.mu.Lock()
		if cur, ok := c.items[key]; ok && cur.Expiration == item.Expiration {
			delete(c.items, key)
		}
		c.mu.Unlock()
		return nil, false
	}

	return item.Value, true
}

// Delete drops key and invalidates loads started before the call.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
	c.gen++
}

// Size returns the number of stored items.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
