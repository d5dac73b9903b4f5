package equipment

import (
	"sync"
	"time"
)

// ContextCache holds resolved LoadingContexts per user with a TTL. It is
// constructed explicitly and injected into the ContextResolver rather than
// living as package state, so tests can control the TTL and clock and a
// deployment can size its staleness window. In a multi-instance deployment
// each instance carries its own cache; staleness is bounded by the TTL.
type ContextCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[int64]cacheEntry
}

type cacheEntry struct {
	ctx      LoadingContext
	storedAt time.Time
}

// NewContextCache creates a cache with the given TTL. A zero ttl disables
// caching entirely (every Get is a miss).
func NewContextCache(ttl time.Duration) *ContextCache {
	return &ContextCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[int64]cacheEntry),
	}
}

// Get returns the cached context for userID if one exists and is younger
// than the TTL.
func (c *ContextCache) Get(userID int64) (LoadingContext, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[userID]
	if !ok {
		return LoadingContext{}, false
	}
	if c.ttl <= 0 || c.now().Sub(e.storedAt) >= c.ttl {
		delete(c.entries, userID)
		return LoadingContext{}, false
	}
	return e.ctx, true
}

// Put stores a freshly resolved context for userID.
func (c *ContextCache) Put(userID int64, ctx LoadingContext) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = cacheEntry{ctx: ctx, storedAt: c.now()}
}

// Invalidate drops the cached context for userID. Callers that mutate
// equipment profiles must invalidate; the cache has no subscription
// mechanism of its own.
func (c *ContextCache) Invalidate(userID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
}
