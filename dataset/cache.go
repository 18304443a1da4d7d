package dataset

import (
	"sync"
)

// Cache keeps parsed records under the key the loader derives from source
// location and schema. It is created at startup and handed to every loader
// that wants one; there is no implicit shared instance.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]Record
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[string][]Record),
	}
}

func (c *Cache) Get(key string) ([]Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	rs, ok := c.entries[key]
	return rs, ok
}

func (c *Cache) Put(key string, records []Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = records
}

func (c *Cache) Forget(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
