package store

import (
	"container/list"
	"sync"
)

// MemoryCache holds recently played speech payloads, dropping the least
// recently used ones once their total size passes the byte budget.
type MemoryCache struct {
	mu     sync.Mutex
	budget int64
	used   int64
	order  *list.List // front is most recent; values are *cached
	byKey  map[string]*list.Element
	stats  Stats
}

type cached struct {
	key     string
	payload []byte
}

// NewMemoryCache returns a cache holding at most budget bytes of values.
func NewMemoryCache(budget int64) *MemoryCache {
	return &MemoryCache{
		budget: budget,
		order:  list.New(),
		byKey:  make(map[string]*list.Element),
		stats:  Stats{Capacity: budget},
	}
}

// Get returns the payload stored under key and marks it as recent.
func (c *MemoryCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.byKey[key]
	if !ok {
		c.stats.Misses++
		return nil, false
	}
	c.stats.Hits++
	c.order.MoveToFront(el)
	return el.Value.(*cached).payload, true
}

// Put stores value under key. A value larger than the whole budget is
// refused with ErrItemTooLarge and leaves the cache untouched.
func (c *MemoryCache) Put(key string, value []byte) error {
	size := int64(len(value))
	if size > c.budget {
		return ErrItemTooLarge
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.byKey[key]; ok {
		c.used -= int64(len(el.Value.(*cached).payload))
		el.Value = &cached{key: key, payload: value}
		c.used += size
		c.order.MoveToFront(el)
	} else {
		c.byKey[key] = c.order.PushFront(&cached{key: key, payload: value})
		c.used += size
	}

	for c.used > c.budget {
		oldest := c.order.Back()
		entry := oldest.Value.(*cached)
		c.order.Remove(oldest)
		delete(c.byKey, entry.key)
		c.used -= int64(len(entry.payload))
		c.stats.Evictions++
	}
	return nil
}

// Len returns the number of cached payloads.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Stats reports hits, misses, evictions and current usage.
func (c *MemoryCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := c.stats
	s.Size = c.used
	s.ItemCount = int64(c.order.Len())
	s.computeHitRate()
	return s
}
