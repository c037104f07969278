package processor

import (
	"sync"

	"fjacquet/specsheet/internal/models"
)

// Cache holds processed datasheet content keyed by model number. It is
// safe for concurrent use and lives as long as its owner keeps it; there
// is no package-level instance.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*models.ModelContent
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*models.ModelContent)}
}

// Get returns the cached content for modelNumber.
func (c *Cache) Get(modelNumber string) (*models.ModelContent, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	content, ok := c.entries[modelNumber]
	return content, ok
}

// Put stores content under its model number.
func (c *Cache) Put(content *models.ModelContent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[content.ModelNumber] = content
}

// Len returns the number of cached models.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear drops every cached entry. Subsequent lookups re-extract.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*models.ModelContent)
}
