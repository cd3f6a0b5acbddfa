package search

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankResultsDeduplicatesByURL(t *testing.T) {
	results := []Result{
		{URL: "https://a", FinalScore: 0.9},
		{URL: "https://b", FinalScore: 0.8},
		{URL: "https://a", FinalScore: 0.9},
	}

	ranking := rankResults(results, 6, 10)
	require.Len(t, ranking.Display, 2)

	seen := map[string]bool{}
	for _, res := range ranking.Display {
		assert.False(t, seen[res.URL], "URL %s appears twice", res.URL)
		seen[res.URL] = true
	}
}

func TestRankResultsOrdering(t *testing.T) {
	results := []Result{
		{URL: "https://low", FinalScore: 0.2},
		{URL: "https://high", FinalScore: 0.9},
		{URL: "https://mid", FinalScore: 0.5},
	}

	ranking := rankResults(results, 6, 10)
	require.Len(t, ranking.Display, 3)
	assert.Equal(t, "https://high", ranking.Display[0].URL)
	assert.Equal(t, "https://mid", ranking.Display[1].URL)
	assert.Equal(t, "https://low", ranking.Display[2].URL)
}

func TestRankResultsDeterministicTieBreak(t *testing.T) {
	// Equal scores sort by URL, so ranking never depends on arrival order.
	forward := []Result{
		{URL: "https://a", FinalScore: 0.5},
		{URL: "https://b", FinalScore: 0.5},
		{URL: "https://c", FinalScore: 0.5},
	}
	backward := []Result{forward[2], forward[0], forward[1]}

	first := rankResults(forward, 6, 10)
	second := rankResults(backward, 6, 10)
	assert.Equal(t, first.Display, second.Display)
	assert.Equal(t, "https://a", first.Display[0].URL)
}

func TestRankResultsTruncation(t *testing.T) {
	var results []Result
	for i := 0; i < 15; i++ {
		results = append(results, Result{
			URL:        fmt.Sprintf("https://site-%02d", i),
			FinalScore: float64(i) / 15.0,
		})
	}

	ranking := rankResults(results, 6, 10)
	assert.Len(t, ranking.Evidence, 6)
	assert.Len(t, ranking.Display, 10)

	// Evidence is a prefix of display.
	for i, res := range ranking.Evidence {
		assert.Equal(t, ranking.Display[i].URL, res.URL)
	}
}

func TestRankResultsFewerThanEvidenceSize(t *testing.T) {
	results := []Result{
		{URL: "https://a", FinalScore: 0.3},
		{URL: "https://b", FinalScore: 0.6},
	}

	ranking := rankResults(results, 6, 10)
	assert.Len(t, ranking.Evidence, 2)
	assert.Len(t, ranking.Display, 2)
}

func TestRankResultsEvidenceLargerThanDefaultDisplay(t *testing.T) {
	var results []Result
	for i := 0; i < 30; i++ {
		results = append(results, Result{
			URL:        fmt.Sprintf("https://site-%02d", i),
			FinalScore: float64(i) / 30.0,
		})
	}

	// An oversized evidence request widens the diagnostic slice instead of
	// truncating evidence below it.
	ranking := rankResults(results, 20, 10)
	assert.Len(t, ranking.Evidence, 20)
	assert.Len(t, ranking.Display, 20)
	for i, res := range ranking.Evidence {
		assert.Equal(t, ranking.Display[i].URL, res.URL)
	}
}

func TestRankResultsEmpty(t *testing.T) {
	ranking := rankResults(nil, 6, 10)
	assert.Empty(t, ranking.Evidence)
	assert.Empty(t, ranking.Display)
}

func TestRankResultsIdempotent(t *testing.T) {
	results := []Result{
		{URL: "https://b", FinalScore: 0.5},
		{URL: "https://a", FinalScore: 0.7},
	}

	once := rankResults(results, 6, 10)
	twice := rankResults(once.Display, 6, 10)
	assert.Equal(t, once.Display, twice.Display)
}
