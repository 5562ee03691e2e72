package store

import (
	"sync"
	"time"
)

// readCache memoizes the loaded table for a short window so a UI that
// re-queries on every interaction does not re-read the file each time.
// The TTL is a staleness bound, not a correctness mechanism; any successful
// write invalidates unconditionally. A TTL <= 0 disables caching entirely,
// which is the right setting when several instances share one file.
type readCache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	table   *Table
	expires time.Time
}

func newReadCache(ttl time.Duration, now func() time.Time) *readCache {
	if now == nil {
		now = time.Now
	}
	return &readCache{ttl: ttl, now: now}
}

// getOrLoad returns the cached table when fresh, otherwise calls load and
// caches the result. Load errors are never cached.
func (c *readCache) getOrLoad(load func() (*Table, error)) (*Table, error) {
	if c.ttl <= 0 {
		return load()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.table != nil && c.now().Before(c.expires) {
		return c.table.Clone(), nil
	}
	t, err := load()
	if err != nil {
		return nil, err
	}
	c.table = t.Clone()
	c.expires = c.now().Add(c.ttl)
	return t, nil
}

// invalidate drops the cached table immediately.
func (c *readCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.table = nil
	c.expires = time.Time{}
}
