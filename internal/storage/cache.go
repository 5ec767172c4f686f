// cache.go - In-memory cache for market price lookups

package storage

import (
	"sync"
	"time"
)

// MarketPriceCache stores one commodity/region query result.
type MarketPriceCache struct {
	Prices   []MarketPrice
	LoadedAt time.Time
}

// Global cache map: "commodity|region" -> cache
var marketCacheMap = make(map[string]*MarketPriceCache)
var cacheMutex sync.RWMutex

const CACHE_TTL = 5 * time.Minute // Cache expires after 5 minutes

// GetOrLoadMarketPrices retrieves prices from cache or loads from DB.
func GetOrLoadMarketPrices(commodity, region string) ([]MarketPrice, error) {
	key := commodity + "|" + region

	cacheMutex.RLock()
	cache, exists := marketCacheMap[key]
	cacheMutex.RUnlock()

	if exists && time.Since(cache.LoadedAt) < CACHE_TTL {
		return cache.Prices, nil
	}

	cacheMutex.Lock()
	defer cacheMutex.Unlock()

	// Double-check after acquiring write lock
	cache, exists = marketCacheMap[key]
	if exists && time.Since(cache.LoadedAt) < CACHE_TTL {
		return cache.Prices, nil
	}

	prices, err := ListMarketPrices(commodity, region)
	if err != nil {
		return nil, err
	}

	marketCacheMap[key] = &MarketPriceCache{
		Prices:   prices,
		LoadedAt: time.Now(),
	}
	return prices, nil
}

// InvalidateMarketCache removes the cached result for one query.
func InvalidateMarketCache(commodity, region string) {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	delete(marketCacheMap, commodity+"|"+region)
}

// ClearAllCache removes all cached data.
func ClearAllCache() {
	cacheMutex.Lock()
	defer cacheMutex.Unlock()
	marketCacheMap = make(map[string]*MarketPriceCache)
}
