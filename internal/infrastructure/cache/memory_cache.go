// Package cache provides the in-memory response cache used by the request
// pipeline. Entries expire by TTL and the store evicts its oldest batch when
// full, so one hot key can never pin the cache at capacity.
package cache

import (
	"sort"
	"sync"
	"time"

	"github.com/auraos/aibridge/internal/domain"
	"github.com/auraos/aibridge/internal/ports"
)

const (
	defaultTTL           = time.Hour
	defaultMaxEntries    = 1000
	defaultEvictionBatch = 100
)

// MemoryCache is a TTL-bounded map of pipeline results. Expired entries are
// dropped lazily on read; capacity is enforced on write by evicting the
// oldest entries in a batch.
type MemoryCache struct {
	mu            sync.Mutex
	entries       map[string]domain.CacheEntry
	ttl           time.Duration
	maxEntries    int
	evictionBatch int

	now func() time.Time
}

// NewMemoryCache builds a cache from settings, applying defaults for any
// zero field.
func NewMemoryCache(cfg domain.CacheSettings) *MemoryCache {
	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultTTL
	}
	maxEntries := cfg.MaxEntries
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	batch := cfg.EvictionBatch
	if batch <= 0 {
		batch = defaultEvictionBatch
	}
	if batch > maxEntries {
		batch = maxEntries
	}
	return &MemoryCache{
		entries:       make(map[string]domain.CacheEntry),
		ttl:           ttl,
		maxEntries:    maxEntries,
		evictionBatch: batch,
		now:           time.Now,
	}
}

// Get returns the stored result for key if present and unexpired. An expired
// entry is removed and reported as a miss.
func (c *MemoryCache) Get(key string) (domain.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return domain.Result{}, false
	}
	if c.now().Sub(entry.CreatedAt) > c.ttl {
		delete(c.entries, key)
		return domain.Result{}, false
	}
	return entry.Result, true
}

// Put stores a result, evicting the oldest batch first when at capacity.
func (c *MemoryCache) Put(key string, result domain.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxEntries {
		c.evictOldest()
	}
	c.entries[key] = domain.CacheEntry{
		Key:       key,
		Result:    result,
		CreatedAt: c.now(),
	}
}

// evictOldest removes the evictionBatch oldest entries. Caller holds the lock.
func (c *MemoryCache) evictOldest() {
	type aged struct {
		key       string
		createdAt time.Time
	}
	all := make([]aged, 0, len(c.entries))
	for key, entry := range c.entries {
		all = append(all, aged{key, entry.CreatedAt})
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].createdAt.Before(all[j].createdAt)
	})
	batch := c.evictionBatch
	if batch > len(all) {
		batch = len(all)
	}
	for _, victim := range all[:batch] {
		delete(c.entries, victim.key)
	}
}

// Len reports the number of stored entries, including any not yet lazily
// expired.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Clear drops every entry.
func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]domain.CacheEntry)
}

var _ ports.CacheStore = (*MemoryCache)(nil)
