package repositories

import (
	"context"
	"strings"
	"sync"
	"time"

	"weather-check/internal/models"
	"weather-check/pkg/logger"
)

// CachedGeocoder remembers successful lookups for ttl. Misses and failures
// are never cached.
type CachedGeocoder struct {
	geocoder  Geocoder
	ttl       time.Duration
	l         *logger.Logger
	now       func() time.Time
	mutex     sync.RWMutex
	cache     map[string]cacheEntry
	hitCount  int
	missCount int
}

type CacheStats struct {
	Hits    int
	Misses  int
	Entries int
}

// CacheStatsReporter is implemented by geocoders that keep a cache.
type CacheStatsReporter interface {
	CacheStats() CacheStats
}

type cacheEntry struct {
	coords   models.Coordinates
	storedAt time.Time
}

func NewCachedGeocoder(geocoder Geocoder, ttl time.Duration, l *logger.Logger) *CachedGeocoder {
	return &CachedGeocoder{
		geocoder: geocoder,
		ttl:      ttl,
		l:        l,
		now:      time.Now,
		cache:    make(map[string]cacheEntry),
	}
}

func (c *CachedGeocoder) Name() string {
	return c.geocoder.Name() + " [Cached]"
}

func (c *CachedGeocoder) Geocode(ctx context.Context, query models.LocationQuery) (models.Coordinates, error) {
	key := cacheKey(query)

	c.mutex.RLock()
	entry, found := c.cache[key]
	c.mutex.RUnlock()

	if found && !c.expired(entry) {
		c.mutex.Lock()
		c.hitCount++
		c.mutex.Unlock()

		c.l.Debug("geocode cache hit", map[string]any{
			"query": key,
			"age":   c.now().Sub(entry.storedAt).Round(time.Second).String(),
		})
		return entry.coords, nil
	}

	c.mutex.Lock()
	c.missCount++
	if found {
		if current, ok := c.cache[key]; ok && c.expired(current) {
			delete(c.cache, key)
		}
	}
	c.mutex.Unlock()

	coords, err := c.geocoder.Geocode(ctx, query)
	if err != nil {
		return coords, err
	}

	c.mutex.Lock()
	c.sweepLocked()
	c.cache[key] = cacheEntry{coords: coords, storedAt: c.now()}
	c.mutex.Unlock()

	return coords, nil
}

func (c *CachedGeocoder) expired(e cacheEntry) bool {
	return c.now().Sub(e.storedAt) >= c.ttl
}

// sweepLocked drops every expired entry; c.mutex must be held.
func (c *CachedGeocoder) sweepLocked() {
	for k, e := range c.cache {
		if c.expired(e) {
			delete(c.cache, k)
		}
	}
}

func (c *CachedGeocoder) CacheStats() CacheStats {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return CacheStats{Hits: c.hitCount, Misses: c.missCount, Entries: len(c.cache)}
}

func cacheKey(query models.LocationQuery) string {
	n := query.Normalize()
	return strings.ToLower(n.GeocoderParam())
}

var (
	_ Geocoder           = (*CachedGeocoder)(nil)
	_ CacheStatsReporter = (*CachedGeocoder)(nil)
)
