package search

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"searchpilot/internal/websearch"
)

// fakeProvider serves canned responses per query and records call counts.
type fakeProvider struct {
	mu        sync.Mutex
	responses map[string]websearch.Response
	errors    map[string]error
	calls     map[string]int
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		responses: make(map[string]websearch.Response),
		errors:    make(map[string]error),
		calls:     make(map[string]int),
	}
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Search(_ context.Context, query string, _ int) (websearch.Response, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls[query]++
	if err, ok := p.errors[query]; ok {
		return websearch.Response{}, err
	}
	return p.responses[query], nil
}

func (p *fakeProvider) callCount(query string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[query]
}

func hitsFor(prefix string, n int) []websearch.Result {
	hits := make([]websearch.Result, 0, n)
	for i := 0; i < n; i++ {
		hits = append(hits, websearch.Result{
			Title:   fmt.Sprintf("%s hit %d", prefix, i),
			URL:     fmt.Sprintf("https://%s.example/%d", prefix, i),
			Snippet: fmt.Sprintf("a sufficiently long snippet for %s number %d", prefix, i),
		})
	}
	return hits
}

func newTestExecutor(provider websearch.Provider) *executor {
	return &executor{
		provider:    provider,
		cache:       newResultCache(time.Minute),
		scorer:      newTestScorer(),
		resultLimit: 5,
		timeout:     time.Second,
	}
}

func TestExecuteAllCollectsUnion(t *testing.T) {
	provider := newFakeProvider()
	queries := []string{"q1", "q2", "q3", "q4"}
	for i, q := range queries {
		provider.responses[q] = websearch.Response{Results: hitsFor(fmt.Sprintf("site%d", i), 3)}
	}

	exec := newTestExecutor(provider)
	results := exec.executeAll(context.Background(), queries, IntentGeneral)
	assert.Len(t, results, 12)
}

func TestExecuteAllPartialFailure(t *testing.T) {
	provider := newFakeProvider()
	provider.responses["ok1"] = websearch.Response{Results: hitsFor("a", 3)}
	provider.responses["ok2"] = websearch.Response{Results: hitsFor("b", 3)}
	provider.responses["ok3"] = websearch.Response{Results: hitsFor("c", 3)}
	provider.errors["boom"] = errors.New("backend unavailable")

	exec := newTestExecutor(provider)
	results := exec.executeAll(context.Background(), []string{"ok1", "boom", "ok2", "ok3"}, IntentNews)

	// The failing query contributes nothing and does not abort its siblings.
	assert.Len(t, results, 9)
}

func TestExecuteAllEmptyQueries(t *testing.T) {
	exec := newTestExecutor(newFakeProvider())
	assert.Empty(t, exec.executeAll(context.Background(), nil, IntentGeneral))
}

func TestSearchOneDropsInvalidHits(t *testing.T) {
	provider := newFakeProvider()
	provider.responses["q"] = websearch.Response{Results: []websearch.Result{
		{Title: "kept", URL: "https://ok.example", Snippet: "long enough to keep around"},
		{Title: "no url", URL: "", Snippet: "long enough but url is missing"},
		{Title: "short snippet", URL: "https://short.example", Snippet: "tiny"},
	}}

	exec := newTestExecutor(provider)
	results := exec.searchOne(context.Background(), "q", IntentGeneral)

	require.Len(t, results, 1)
	assert.Equal(t, "https://ok.example", results[0].URL)
}

func TestSearchOneUsesCache(t *testing.T) {
	provider := newFakeProvider()
	provider.responses["q"] = websearch.Response{Results: hitsFor("a", 2)}

	exec := newTestExecutor(provider)

	first := exec.searchOne(context.Background(), "q", IntentCrypto)
	second := exec.searchOne(context.Background(), "q", IntentCrypto)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.callCount("q"), "second lookup must be served from cache")
}

func TestSearchOneCacheIsIntentScoped(t *testing.T) {
	provider := newFakeProvider()
	provider.responses["q"] = websearch.Response{Results: hitsFor("a", 2)}

	exec := newTestExecutor(provider)
	exec.searchOne(context.Background(), "q", IntentCrypto)
	exec.searchOne(context.Background(), "q", IntentProgramming)

	assert.Equal(t, 2, provider.callCount("q"))
}

func TestSearchOneScoresHits(t *testing.T) {
	provider := newFakeProvider()
	provider.responses["bitcoin price"] = websearch.Response{Results: []websearch.Result{
		{
			Title:   "Bitcoin price today",
			URL:     "https://coinmarketcap.com/currencies/bitcoin",
			Snippet: "bitcoin price today with 24h trading volume and market cap",
		},
	}}

	exec := newTestExecutor(provider)
	results := exec.searchOne(context.Background(), "bitcoin price", IntentCrypto)

	require.Len(t, results, 1)
	res := results[0]
	assert.Equal(t, "coinmarketcap.com", res.Domain)
	assert.Greater(t, res.FinalScore, 0.0)
	assert.Greater(t, res.IntentMatch, 0.0)
	assert.GreaterOrEqual(t, res.SourceQuality, 0.8)
}
