package store

import (
	"sync"
	"time"

	"github.com/weatherexplorer/backend/internal/weather"
)

// MemoryCache is a concurrency-safe in-memory implementation of
// weather.Cache, keyed by normalized query string.
type MemoryCache struct {
	mu sync.RWMutex

	entries map[string]weather.Entry
}

// NewMemoryCache creates an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]weather.Entry),
	}
}

// Get returns the entry for a key, if any.
func (c *MemoryCache) Get(key string) (weather.Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	return e, ok
}

// Put stores the entry for a key, replacing any previous state.
func (c *MemoryCache) Put(key string, e weather.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = e
}

// Delete removes a key's entry.
func (c *MemoryCache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)
}

// PruneStale removes terminal entries fetched before the cutoff. Loading
// entries are kept so an in-flight lookup never loses its slot. Error
// entries carry no fetch time and are always eligible.
func (c *MemoryCache) PruneStale(cutoff time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	pruned := 0
	for key, e := range c.entries {
		if e.Status == weather.StatusLoading {
			continue
		}
		if e.FetchedAt.Before(cutoff) {
			delete(c.entries, key)
			pruned++
		}
	}
	return pruned
}

// Len reports the number of tracked keys.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

var _ weather.Cache = (*MemoryCache)(nil)
