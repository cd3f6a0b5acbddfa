package search

import (
	"net/url"
	"strings"
)

// minSnippetLen is the shortest snippet worth scoring. Backend hits below it
// are dropped at ingestion.
const minSnippetLen = 10

// Result is one retrieved and scored search hit. Results are immutable once
// scored; the URL is the identity key used for deduplication.
type Result struct {
	Title   string
	URL     string
	Snippet string
	Domain  string

	RelevanceScore float64
	SourceQuality  float64
	IntentMatch    float64
	FinalScore     float64
}

// domainFromURL extracts the lowercased host of a URL with any leading "www."
// stripped. Unparseable URLs map to "unknown" so they still hit the default
// trust score.
func domainFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	domain := strings.ToLower(u.Host)
	return strings.TrimPrefix(domain, "www.")
}

// validHit reports whether a raw backend hit carries enough substance to be
// scored at all.
func validHit(rawURL, snippet string) bool {
	return rawURL != "" && len(snippet) >= minSnippetLen
}
