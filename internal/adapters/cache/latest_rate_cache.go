package cache

import (
	"fmt"
	"time"

	"ngnfx/internal/domain"

	"github.com/dgraph-io/ristretto"
)

const latestKey = "fx:usd_ngn:latest"

// LatestRateCache keeps the most recent persisted FinalRate in memory. Entries expire after ttl,
// so a Get hit is never older than the configured cache age.
type LatestRateCache struct {
	cache *ristretto.Cache
	ttl   time.Duration
}

func NewLatestRateCache(ttl time.Duration) (*LatestRateCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 100,
		MaxCost:     10,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create latest rate cache failed: %w", err)
	}
	return &LatestRateCache{cache: c, ttl: ttl}, nil
}

func (c *LatestRateCache) Get() (domain.FinalRate, bool) {
	if v, ok := c.cache.Get(latestKey); ok {
		rate, ok := v.(domain.FinalRate)
		return rate, ok
	}
	return domain.FinalRate{}, false
}

func (c *LatestRateCache) Set(rate domain.FinalRate) {
	if c.ttl > 0 {
		c.cache.SetWithTTL(latestKey, rate, 1, c.ttl)
	} else {
		c.cache.Set(latestKey, rate, 1)
	}
	c.cache.Wait()
}

func (c *LatestRateCache) Close() { c.cache.Close() }
