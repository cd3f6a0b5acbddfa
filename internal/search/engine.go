// Package search implements the intent-aware web search engine: query
// classification and expansion, parallel backend fan-out with caching,
// multi-signal scoring, ranking, and evidence assembly for synthesis.
package search

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"searchpilot/internal/llm"
	"searchpilot/internal/logger"
	"searchpilot/internal/websearch"
)

// NoResultsMessage is the user-visible answer when every expanded query came
// back empty after filtering.
const NoResultsMessage = "Sorry, no relevant information was found. Please try different keywords or search terms."

const answerHeading = "### 🔎 Intelligent Web Search Analysis"

// TextGenerator is the generation backend collaborator. The engine only
// supplies system/user messages and consumes text.
type TextGenerator interface {
	Chat(ctx context.Context, messages []llm.Message) (string, error)
	ChatStream(ctx context.Context, messages []llm.Message, handler llm.StreamHandler) (string, error)
}

// LanguageDetector picks the language the answer should be written in.
type LanguageDetector interface {
	DetectFromText(ctx context.Context, text string) string
}

// Config tunes one engine instance.
type Config struct {
	MaxQueries    int           // expanded queries per run, at most 4
	ResultLimit   int           // hits requested per backend call
	EvidenceSize  int           // results handed to synthesis
	DisplaySize   int           // results kept for diagnostics
	CacheTTL      time.Duration // result cache lifetime
	SearchTimeout time.Duration // per backend call
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		MaxQueries:    DefaultMaxQueries,
		ResultLimit:   DefaultResultLimit,
		EvidenceSize:  DefaultEvidenceSize,
		DisplaySize:   DefaultDisplaySize,
		CacheTTL:      DefaultCacheTTL,
		SearchTimeout: 15 * time.Second,
	}
}

// Engine orchestrates one search-and-synthesize pipeline. Each instance owns
// its own cache, trust table and intent table; nothing is shared through
// package state.
type Engine struct {
	cfg      Config
	provider websearch.Provider
	gen      TextGenerator
	lang     LanguageDetector

	intents *intentTable
	trust   map[string]float64
	cache   *resultCache
	now     func() time.Time

	mu          sync.Mutex
	lastRanking Ranking
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides the time source used for year-sensitive expansion and
// freshness scoring.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithLanguageDetector sets the answer-language detector. Without one, answers
// default to english.
func WithLanguageDetector(d LanguageDetector) Option {
	return func(e *Engine) {
		e.lang = d
	}
}

// New creates an engine over a search provider and a generation backend.
func New(provider websearch.Provider, gen TextGenerator, cfg Config, opts ...Option) *Engine {
	if cfg.MaxQueries <= 0 || cfg.MaxQueries > DefaultMaxQueries {
		cfg.MaxQueries = DefaultMaxQueries
	}
	if cfg.ResultLimit <= 0 {
		cfg.ResultLimit = DefaultResultLimit
	}
	if cfg.EvidenceSize <= 0 {
		cfg.EvidenceSize = DefaultEvidenceSize
	}
	if cfg.DisplaySize <= 0 {
		cfg.DisplaySize = DefaultDisplaySize
	}
	if cfg.DisplaySize < cfg.EvidenceSize {
		cfg.DisplaySize = cfg.EvidenceSize
	}

	e := &Engine{
		cfg:      cfg,
		provider: provider,
		gen:      gen,
		intents:  defaultIntentTable(),
		trust:    defaultTrustTable(),
		cache:    newResultCache(cfg.CacheTTL),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Classify exposes the intent classification used by Run.
func (e *Engine) Classify(query string) Intent {
	return e.intents.Classify(query)
}

// LastRanking returns the diagnostic ranking of the most recent run.
func (e *Engine) LastRanking() Ranking {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastRanking
}

// Run executes the full pipeline for one user request and returns the
// assembled answer. With a non-nil stream handler the answer is also emitted
// incrementally: header block, live fragments, sources block. Failures inside
// the pipeline degrade to textual fallbacks; Run never panics and only
// surfaces an error for an already-dead context.
func (e *Engine) Run(ctx context.Context, userPrompt, searchQuery, priorContext string, stream llm.StreamHandler) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	intent := e.intents.Classify(searchQuery)
	logger.Info("intent detected: %s for query %q", intent, searchQuery)

	year := e.now().Year()
	queries := expandQueries(searchQuery, intent, e.cfg.MaxQueries, year)
	logger.Info("executing %d parallel searches (intent: %s)", len(queries), intent)

	exec := &executor{
		provider:    e.provider,
		cache:       e.cache,
		scorer:      newScorer(e.trust, e.intents, year),
		resultLimit: e.cfg.ResultLimit,
		timeout:     e.cfg.SearchTimeout,
	}
	all := exec.executeAll(ctx, queries, intent)

	ranking := rankResults(all, e.cfg.EvidenceSize, e.cfg.DisplaySize)
	e.mu.Lock()
	e.lastRanking = ranking
	e.mu.Unlock()

	if len(ranking.Evidence) == 0 {
		if stream != nil {
			stream(NoResultsMessage)
		}
		return NoResultsMessage, nil
	}

	contextBlock := assembleContext(ranking.Evidence)
	sourcesBlock := assembleSources(ranking.Evidence)

	language := "english"
	if e.lang != nil {
		var compact strings.Builder
		compact.WriteString(userPrompt)
		for _, res := range ranking.Evidence {
			compact.WriteString("\n")
			compact.WriteString(res.Title)
			compact.WriteString(" ")
			compact.WriteString(res.Snippet)
		}
		language = e.lang.DetectFromText(ctx, compact.String())
	}

	header := fmt.Sprintf("%s\n\n**Intent:** %s\n\n**Answer Language:** %s\n\n",
		answerHeading, intent, language)
	sourcesSuffix := fmt.Sprintf("\n\n---\n\n**Sources:**\n%s", sourcesBlock)

	messages := []llm.Message{
		{Role: "system", Content: synthesisSystemPrompt},
		{Role: "user", Content: buildSynthesisPrompt(userPrompt, contextBlock, priorContext, language, intent)},
	}

	if stream != nil {
		stream(header)
		body, err := e.gen.ChatStream(ctx, messages, stream)
		if err != nil {
			// Whatever streamed so far stays on screen; close out with a
			// readable failure notice instead of dying.
			logger.Error("synthesis failed: %v", err)
			errText := fmt.Sprintf("Error during synthesis. Please try your search again. Technical error: %v", err)
			stream("\n" + errText)
			return header + body + "\n" + errText, nil
		}
		stream(sourcesSuffix)
		return header + body + sourcesSuffix, nil
	}

	body, err := e.gen.Chat(ctx, messages)
	if err != nil {
		logger.Error("synthesis failed: %v", err)
		return header + fmt.Sprintf("Error during synthesis. Please try your search again. Technical error: %v", err), nil
	}
	return header + strings.TrimSpace(body) + sourcesSuffix, nil
}
