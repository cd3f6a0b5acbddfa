package websearch

import (
	"context"
	"strings"
	"time"

	"searchpilot/internal/config"
)

// Result is a single search result entry.
type Result struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
	Source  string `json:"source"`
}

// Response is a normalized search response.
type Response struct {
	Query    string   `json:"query"`
	Provider string   `json:"provider"`
	Results  []Result `json:"results"`
}

// Provider performs web searches. Implementations are best-effort keyword
// search: an empty result set is a valid response, not an error.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, limit int) (Response, error)
}

// FromConfig builds the provider selected in the web_search config section.
// Unknown provider names fall back to Brave.
func FromConfig(cfg config.WebSearchConfig) Provider {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "searxng":
		return NewSearXNGProvider(cfg.BaseURL, cfg.UserAgent, cfg.APIKey, timeout)
	case "duckduckgo", "ddg":
		return NewDuckDuckGoProvider(cfg.BaseURL, cfg.UserAgent, timeout)
	default:
		return NewBraveProvider(cfg.BaseURL, cfg.UserAgent, timeout)
	}
}
