// Package assets keeps fetched banner images so a stable request URL is
// downloaded once per cache lifetime.
package assets

import (
	"sync"

	"surveysync/internal/models"
	"surveysync/internal/providers"
)

const cacheLabel = "asset"

type CacheInterface interface {
	Put(key string, asset *models.Asset)
	Get(key string) (*models.Asset, bool)
	Clear()
	Len() int
}

// Cache has no expiry and no size bound. Entries leave only through Clear.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*models.Asset
	metrics providers.MetricsProviderInterface
}

func NewCache(metrics providers.MetricsProviderInterface) CacheInterface {
	return &Cache{
		entries: make(map[string]*models.Asset),
		metrics: metrics,
	}
}

func (c *Cache) Put(key string, asset *models.Asset) {
	if asset == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = asset
}

func (c *Cache) Get(key string) (*models.Asset, bool) {
	c.mu.RLock()
	asset, ok := c.entries[key]
	c.mu.RUnlock()

	if ok {
		c.metrics.IncCacheHits(cacheLabel)
	} else {
		c.metrics.IncCacheMisses(cacheLabel)
	}
	return asset, ok
}

func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
