// Package cache holds the in-memory description to category mapping shared by
// one report engine.
package cache

import "sync"

// ClassificationCache maps a transaction description to the category label
// the classification service returned for it. The first label stored for a
// description wins; later stores for the same description are ignored.
//
// Entries live as long as the cache value. There is no expiry, size bound
// or persistence.
type ClassificationCache struct {
	mu      sync.RWMutex
	entries map[string]string
}

// New creates an empty cache.
func New() *ClassificationCache {
	return &ClassificationCache{
		entries: make(map[string]string),
	}
}

// Lookup returns the cached label for description, if any. It never performs I/O.
func (c *ClassificationCache) Lookup(description string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	label, ok := c.entries[description]
	return label, ok
}

// Store records label for description unless a label is already present.
// It returns the label held by the cache afterwards and whether this call
// wrote it.
func (c *ClassificationCache) Store(description, label string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.entries[description]; ok {
		return existing, false
	}
	c.entries[description] = label
	return label, true
}

// Len returns the number of cached descriptions.
func (c *ClassificationCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Snapshot returns a copy of the cached mapping.
func (c *ClassificationCache) Snapshot() map[string]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]string, len(c.entries))
	for k, v := range c.entries {
		out[k] = v
	}
	return out
}
