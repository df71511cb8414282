package data

import (
	"os"
	"sync"
	"time"
)

type cacheEntry struct {
	entries   []DynamicPriceEntry
	expiresAt time.Time
}

// PriceCache is an in-memory cache of yearly price feed responses.
//
// It is intended for local development, where repeated runs over the same
// range would otherwise refetch identical data. It is enabled only when
// ENABLE_PRICEFEED_CACHE=true and never when API_ENV=production.
type PriceCache struct {
	mu    sync.RWMutex
	store map[int]*cacheEntry
	ttl   time.Duration
}

var globalPriceCache *PriceCache
var priceCacheOnce sync.Once

// GetPriceCache returns the global cache instance, or nil when caching is
// disabled.
func GetPriceCache() *PriceCache {
	if os.Getenv("ENABLE_PRICEFEED_CACHE") != "true" {
		return nil
	}
	if os.Getenv("API_ENV") == "production" {
		return nil
	}

	priceCacheOnce.Do(func() {
		ttl := time.Hour
		if ttlStr := os.Getenv("PRICEFEED_CACHE_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil {
				ttl = parsed
			}
		}
		globalPriceCache = &PriceCache{
			store: make(map[int]*cacheEntry),
			ttl:   ttl,
		}
		go globalPriceCache.cleanup()
	})

	return globalPriceCache
}

func (c *PriceCache) Get(year int) ([]DynamicPriceEntry, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[year]
	if !exists || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.entries, true
}

func (c *PriceCache) Set(year int, entries []DynamicPriceEntry) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[year] = &cacheEntry{
		entries:   entries,
		expiresAt: time.Now().Add(c.ttl),
	}
}

func (c *PriceCache) Clear() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[int]*cacheEntry)
}

func (c *PriceCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for year, entry := range c.store {
			if now.After(entry.expiresAt) {
				delete(c.store, year)
			}
		}
		c.mu.Unlock()
	}
}
