package adapter

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/sells-group/episcope/internal/model"
)

// Cache stores normalized fetch results keyed by source, region, and
// syndrome set. It is injected at adapter construction so tests can
// substitute a deterministic or no-op implementation. Concurrent writes for
// the same key are safe to race; last writer wins, and staleness within the
// TTL window is tolerated by design.
type Cache interface {
	Get(key string) ([]model.SurveillanceDataPoint, bool)
	Set(key string, points []model.SurveillanceDataPoint, ttl time.Duration)
}

// CacheKey builds the canonical cache key for a source, region, and syndrome
// set. Syndromes are sorted so equivalent sets produce equal keys.
func CacheKey(source string, region model.ResolvedRegion, syndromes []model.Syndrome) string {
	names := make([]string, len(syndromes))
	for i, s := range syndromes {
		names[i] = string(s)
	}
	sort.Strings(names)

	parts := []string{source, region.StateAbbrev, string(region.GeoLevel), region.County, strings.Join(names, ",")}
	return strings.Join(parts, "|")
}

type cacheEntry struct {
	points    []model.SurveillanceDataPoint
	expiresAt time.Time
}

// MemoryCache is an in-process TTL cache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	now     func() time.Time
}

// NewMemoryCache returns an empty MemoryCache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]cacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached points for key if present and unexpired.
func (c *MemoryCache) Get(key string) ([]model.SurveillanceDataPoint, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.points, true
}

// Set stores points under key with the given TTL.
func (c *MemoryCache) Set(key string, points []model.SurveillanceDataPoint, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{points: points, expiresAt: c.now().Add(ttl)}
}

// NopCache never stores anything. Useful in tests asserting fetch behavior.
type NopCache struct{}

func (NopCache) Get(string) ([]model.SurveillanceDataPoint, bool)         { return nil, false }
func (NopCache) Set(string, []model.SurveillanceDataPoint, time.Duration) {}
