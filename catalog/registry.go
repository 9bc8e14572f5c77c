package catalog

import "sync"

// Registry looks up the catalog associated with a logger name
type Registry interface {
	LookupCatalog(loggerName string) (*MessageCatalog, bool)
}

// RegistryFunc adapts a function to the Registry interface
type RegistryFunc func(loggerName string) (*MessageCatalog, bool)

// LookupCatalog calls f(loggerName)
func (f RegistryFunc) LookupCatalog(loggerName string) (*MessageCatalog, bool) {
	return f(loggerName)
}

// MapRegistry is an in-memory Registry safe for concurrent use
type MapRegistry struct {
	mu       sync.RWMutex
	catalogs map[string]*MessageCatalog
}

// NewMapRegistry creates an empty registry
func NewMapRegistry() *MapRegistry {
	return &MapRegistry{catalogs: make(map[string]*MessageCatalog)}
}

// Register associates c with loggerName, replacing any previous catalog
func (r *MapRegistry) Register(loggerName string, c *MessageCatalog) {
	r.mu.Lock()
	r.catalogs[loggerName] = c
	r.mu.Unlock()
}

// Unregister removes the catalog of loggerName
func (r *MapRegistry) Unregister(loggerName string) {
	r.mu.Lock()
	delete(r.catalogs, loggerName)
	r.mu.Unlock()
}

// LookupCatalog implements Registry
func (r *MapRegistry) LookupCatalog(loggerName string) (*MessageCatalog, bool) {
	r.mu.RLock()
	c, ok := r.catalogs[loggerName]
	r.mu.RUnlock()
	return c, ok && c != nil
}

// Len returns the number of registered catalogs
func (r *MapRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.catalogs)
}
