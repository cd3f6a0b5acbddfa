package search

import (
	"context"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"searchpilot/internal/logger"
	"searchpilot/internal/websearch"
)

// DefaultResultLimit is the per-query hit count requested from the backend.
const DefaultResultLimit = 5

// executor fans out one backend search per expanded query on a bounded worker
// pool and collects the scored union.
type executor struct {
	provider    websearch.Provider
	cache       *resultCache
	scorer      *scorer
	resultLimit int
	timeout     time.Duration
}

// executeAll runs every expanded query concurrently and flattens the results
// into one unordered list. A failing query contributes an empty list and never
// aborts its siblings.
func (e *executor) executeAll(ctx context.Context, queries []string, intent Intent) []Result {
	if len(queries) == 0 {
		return nil
	}

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		all []Result
	)

	run := func(query string) {
		defer wg.Done()
		results := e.searchOne(ctx, query, intent)
		mu.Lock()
		all = append(all, results...)
		mu.Unlock()
		logger.Info("completed search for %q: %d results", query, len(results))
	}

	pool, err := ants.NewPool(len(queries))
	if err != nil {
		// Pool construction only fails on a bad size; degrade to sequential.
		logger.Warn("worker pool unavailable, searching sequentially: %v", err)
		for _, query := range queries {
			wg.Add(1)
			run(query)
		}
		return all
	}
	defer pool.Release()

	for _, query := range queries {
		query := query
		wg.Add(1)
		if err := pool.Submit(func() { run(query) }); err != nil {
			// A rejected task still has to contribute its results.
			run(query)
		}
	}
	wg.Wait()

	return all
}

// searchOne resolves a single expanded query: cache first, then one backend
// call whose validated hits are scored and cached. All failures degrade to an
// empty list.
func (e *executor) searchOne(ctx context.Context, query string, intent Intent) []Result {
	if cached, ok := e.cache.Get(query, intent); ok {
		logger.Debug("cache hit for %q (intent: %s)", query, intent)
		return cached
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	resp, err := e.provider.Search(ctx, query, e.resultLimit)
	if err != nil {
		logger.Error("search failed for %q: %v", query, err)
		return nil
	}

	results := make([]Result, 0, len(resp.Results))
	for _, hit := range resp.Results {
		if !validHit(hit.URL, hit.Snippet) {
			continue
		}
		results = append(results, e.scorer.score(hit.Title, hit.URL, hit.Snippet, query, intent))
	}

	e.cache.Put(query, intent, results)
	return results
}
