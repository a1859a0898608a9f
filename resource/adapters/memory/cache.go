package memory

import (
	"sync"

	"resourced/resource/ports"
)

// Cache is an unbounded mutex-guarded map cache. Production wiring uses the
// sturdyc adapter; this one keeps tests and dev setups dependency-light.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]ports.Resource
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string]ports.Resource)}
}

func (c *Cache) Get(id string) (ports.Resource, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, ok := c.entries[id]
	return item, ok
}

func (c *Cache) Put(id string, resource ports.Resource) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[id] = resource
}

func (c *Cache) Evict(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, id)
}
