package catalog

import "sync"

// Cache memoizes registry lookups per logger name. A miss queries the
// registry once and stores the answer, including "none". Concurrent
// misses for the same name may both query the registry; the last write
// wins, which is harmless because catalogs are static.
type Cache struct {
	registry Registry
	mu       sync.Mutex
	entries  map[string]*MessageCatalog
}

// NewCache creates a cache in front of registry. A nil registry resolves
// every name to "none".
func NewCache(registry Registry) *Cache {
	return &Cache{
		registry: registry,
		entries:  make(map[string]*MessageCatalog),
	}
}

// Resolve returns the catalog of loggerName. An empty name has no catalog.
func (c *Cache) Resolve(loggerName string) (*MessageCatalog, bool) {
	if loggerName == "" {
		return nil, false
	}

	c.mu.Lock()
	cat, ok := c.entries[loggerName]
	c.mu.Unlock()
	if ok {
		return cat, cat != nil
	}

	// Query outside the lock so a slow registry does not serialize formatting.
	if c.registry != nil {
		cat, _ = c.registry.LookupCatalog(loggerName)
	}

	c.mu.Lock()
	c.entries[loggerName] = cat
	c.mu.Unlock()

	return cat, cat != nil
}

// Len returns the number of cached logger names
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
