package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/paperclass/internal/model"
)

// MemoryCache implements in-memory label caching with expiry
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new memory cache
func NewMemoryCache(defaultTTL time.Duration, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a label from the cache
func (c *MemoryCache) Get(key string) (model.Label, bool) {
	if val, found := c.cache.Get(key); found {
		return copyLabel(val.(model.Label)), true
	}
	return model.Label{}, false
}

// Set stores a label with the given TTL (0 uses the default)
func (c *MemoryCache) Set(key string, label model.Label, ttl time.Duration) error {
	c.cache.Set(key, copyLabel(label), ttl)
	return nil
}

// Len returns the number of cached labels, including expired ones not yet cleaned up
func (c *MemoryCache) Len() int {
	return c.cache.ItemCount()
}

func copyLabel(l model.Label) model.Label {
	if l.Methods != nil {
		l.Methods = append([]string(nil), l.Methods...)
	}
	return l
}
