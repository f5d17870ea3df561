package landmark

import (
	"fmt"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultCacheSize bounds the number of grid cells held in memory. At
// 5-decimal precision one entry covers roughly a 1.1m cell, so walking
// routes touch the same cells repeatedly and a few thousand entries cover
// a whole session comfortably.
const defaultCacheSize = 4096

// Entry is one cached resolution for a grid cell. Name is nil for a
// negative entry (the cell was searched and nothing acceptable was found).
type Entry struct {
	Name     *string
	CachedAt time.Time
}

// CacheStore holds resolution results keyed by rounded coordinate. TTL is
// enforced by the Resolver, not the store: entries carry their creation
// time and the resolver compares against its own clock, so tests can
// expire entries with a fake clock.
type CacheStore interface {
	Get(key string) (Entry, bool)
	Set(key string, e Entry)
}

// lruStore is the production CacheStore: a size-bounded, goroutine-safe
// LRU map. Eviction order does not matter for correctness, only the bound.
type lruStore struct {
	cache *lru.Cache[string, Entry]
}

// NewLRUStore creates a CacheStore bounded to size entries (or the default
// when size <= 0).
func NewLRUStore(size int) CacheStore {
	if size <= 0 {
		size = defaultCacheSize
	}
	c, err := lru.New[string, Entry](size)
	if err != nil {
		// lru.New only fails for a non-positive size, which is guarded above.
		panic(fmt.Sprintf("landmark: lru store: %v", err))
	}
	return &lruStore{cache: c}
}

func (s *lruStore) Get(key string) (Entry, bool) { return s.cache.Get(key) }

func (s *lruStore) Set(key string, e Entry) { s.cache.Add(key, e) }

// CacheKey returns the canonical cache key for a coordinate: both axes
// rounded to 5 decimal places (≈1.1m grid), joined as "lat,lng".
// Coordinates that round identically share one cache entry.
func CacheKey(lat, lng float64) string {
	return fmt.Sprintf("%.5f,%.5f", lat, lng)
}
