package correlation

import (
	"sync"
	"time"
)

// DefaultTTL is how long a computed graph stays servable.
const DefaultTTL = 5 * time.Minute

type cacheEntry struct {
	graph      *Graph
	computedAt time.Time
}

// Cache is a single-slot TTL cache for the correlation graph. A stored graph
// is fresh while now - computedAt < ttl; staleness is checked at read time,
// there is no background expiry.
type Cache struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	entry *cacheEntry
}

// NewCache creates an empty cache with the given TTL.
func NewCache(ttl time.Duration) *Cache {
	return newCacheWithClock(ttl, time.Now)
}

// newCacheWithClock injects the clock for deterministic TTL tests.
func newCacheWithClock(ttl time.Duration, now func() time.Time) *Cache {
	return &Cache{ttl: ttl, now: now}
}

// Get returns the cached graph and true while the entry is fresh.
func (c *Cache) Get() (*Graph, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.entry == nil {
		return nil, false
	}
	if c.now().Sub(c.entry.computedAt) >= c.ttl {
		return nil, false
	}
	return c.entry.graph, true
}

// Store overwrites the slot with a freshly computed graph.
func (c *Cache) Store(g *Graph) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = &cacheEntry{graph: g, computedAt: c.now()}
}

// Invalidate clears the slot unconditionally; the next Get misses
// regardless of age.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entry = nil
}
