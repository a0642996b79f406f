// Package fragcache is a process-wide cache of rendered fragments
// keyed by request path, invalidated by glob patterns after mutations.
//
// Invalidation is deliberately coarse: expiring "/contacts*" drops
// every contacts listing and detail variant. Over-invalidation is
// preferred to a stale read, and expiry failures never fail the
// enclosing request.
package fragcache

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gobwas/glob"
)

// Entry is one cached fragment.
type Entry struct {
	Body     []byte
	StoredAt time.Time
}

// Cache maps fragment keys to entries. Safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	logger  *slog.Logger
}

// New creates an empty cache.
func New(logger *slog.Logger) *Cache {
	return &Cache{
		entries: make(map[string]Entry),
		logger:  logger,
	}
}

// Put stores a fragment under the given key, replacing any previous
// entry.
func (c *Cache) Put(key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = Entry{Body: body, StoredAt: time.Now()}
}

// Get returns the cached fragment for key, if present.
func (c *Cache) Get(key string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

// Expire removes every entry whose key matches the glob pattern and
// returns the number removed. Patterns match across path separators,
// so "/contacts*" also expires "/contacts/con-abc/activities".
// A malformed pattern is logged and ignored; expiry is idempotent.
func (c *Cache) Expire(pattern string) int {
	g, err := glob.Compile(pattern)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("invalid cache expiry pattern",
				slog.String("pattern", pattern),
				slog.String("error", err.Error()))
		}
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key := range c.entries {
		if g.Match(key) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// ExpireAll applies Expire for each pattern.
func (c *Cache) ExpireAll(patterns []string) {
	for _, p := range patterns {
		c.Expire(p)
	}
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
