package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheRoundTrip(t *testing.T) {
	cache := newResultCache(time.Minute)

	stored := []Result{{Title: "t", URL: "https://example.com", FinalScore: 0.7}}
	cache.Put("some query", IntentProgramming, stored)

	got, ok := cache.Get("some query", IntentProgramming)
	require.True(t, ok)
	assert.Equal(t, stored, got)
}

func TestCacheMissOnUnknownKey(t *testing.T) {
	cache := newResultCache(time.Minute)

	_, ok := cache.Get("never stored", IntentGeneral)
	assert.False(t, ok)
}

func TestCacheKeyIncludesIntent(t *testing.T) {
	cache := newResultCache(time.Minute)

	cache.Put("same query", IntentCrypto, []Result{{URL: "https://a"}})

	_, ok := cache.Get("same query", IntentProgramming)
	assert.False(t, ok, "same query under a different intent must be a separate entry")

	_, ok = cache.Get("same query", IntentCrypto)
	assert.True(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	cache := newResultCache(30 * time.Millisecond)

	cache.Put("q", IntentGeneral, []Result{{URL: "https://a"}})

	_, ok := cache.Get("q", IntentGeneral)
	require.True(t, ok)

	time.Sleep(60 * time.Millisecond)

	_, ok = cache.Get("q", IntentGeneral)
	assert.False(t, ok, "expired entries must read as misses")
}

func TestCacheEmptyResultsAreCached(t *testing.T) {
	cache := newResultCache(time.Minute)

	// An empty (but completed) search is still a valid cached outcome.
	cache.Put("nothing found", IntentGeneral, []Result{})

	got, ok := cache.Get("nothing found", IntentGeneral)
	require.True(t, ok)
	assert.Empty(t, got)
}

func TestCacheKeyDeterministic(t *testing.T) {
	assert.Equal(t, cacheKey("abc", IntentCrypto), cacheKey("abc", IntentCrypto))
	assert.NotEqual(t, cacheKey("abc", IntentCrypto), cacheKey("abd", IntentCrypto))
}
