package search

import (
	"crypto/md5"
	"encoding/hex"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultCacheTTL is how long scored results for one (query, intent) pair
// stay reusable.
const DefaultCacheTTL = time.Hour

// resultCache memoizes scored search results per (query, intent) key.
// Expired entries count as misses and are evicted lazily on read; there is no
// background sweeper. Entries are immutable snapshots, so a concurrent
// double-fetch for the same key is harmless (last write wins).
type resultCache struct {
	entries *gocache.Cache
}

func newResultCache(ttl time.Duration) *resultCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	// Cleanup interval 0 disables the janitor goroutine.
	return &resultCache{entries: gocache.New(ttl, 0)}
}

func cacheKey(query string, intent Intent) string {
	sum := md5.Sum([]byte(query + "_" + intent.String()))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached scored results for (query, intent), or false when
// absent or expired.
func (c *resultCache) Get(query string, intent Intent) ([]Result, bool) {
	value, found := c.entries.Get(cacheKey(query, intent))
	if !found {
		return nil, false
	}
	results, ok := value.([]Result)
	if !ok {
		// Corrupt entry; treat as a miss rather than failing the search.
		return nil, false
	}
	return results, true
}

// Put stores the scored results for (query, intent), overwriting any previous
// entry for the same key.
func (c *resultCache) Put(query string, intent Intent, results []Result) {
	c.entries.SetDefault(cacheKey(query, intent), results)
}
