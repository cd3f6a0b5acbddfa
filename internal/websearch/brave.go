package websearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// BraveProvider scrapes the Brave search results page. Brave has no public
// JSON endpoint at this tier, so results are read from the HTML result cards.
type BraveProvider struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func NewBraveProvider(baseURL, userAgent string, timeout time.Duration) *BraveProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = "https://search.brave.com"
	}
	if strings.TrimSpace(userAgent) == "" {
		userAgent = "searchpilot/0.1"
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &BraveProvider{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    &http.Client{Timeout: timeout},
	}
}

func (p *BraveProvider) Name() string {
	return "brave"
}

// Result cards come in a few flavors; the selectors cover organic, news and
// video snippets.
const braveCardSelector = "div.snippet, div.news-snippet, div.video-snippet, div.card"

func (p *BraveProvider) Search(ctx context.Context, query string, limit int) (Response, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Response{}, fmt.Errorf("query cannot be empty")
	}
	if limit <= 0 {
		limit = 5
	}

	endpoint := fmt.Sprintf("%s/search?q=%s", p.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Response{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := p.client.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Response{}, fmt.Errorf("search request failed with status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("failed to parse results page: %w", err)
	}

	results := make([]Result, 0, limit)
	doc.Find(braveCardSelector).EachWithBreak(func(_ int, card *goquery.Selection) bool {
		link, ok := card.Find("a[href]").First().Attr("href")
		if !ok || (!strings.HasPrefix(link, "http://") && !strings.HasPrefix(link, "https://")) {
			return true
		}

		title := cleanText(card.Find("div.title, div.snippet-title").First().Text())
		if title == "" {
			title = cleanText(card.Find("a[href]").First().Text())
		}

		snippet := cleanText(card.Find("div.snippet-content, div.description, div.snippet-description").First().Text())
		if snippet == "" {
			snippet = cleanText(card.Text())
		}

		// Navigation chrome and thin cards are not worth returning.
		if len(snippet) < 30 || len(title) < 5 {
			return true
		}

		results = append(results, Result{
			Title:   title,
			URL:     link,
			Snippet: snippet,
			Source:  p.Name(),
		})
		return len(results) < limit
	})

	return Response{
		Query:    query,
		Provider: p.Name(),
		Results:  results,
	}, nil
}

// cleanText collapses runs of whitespace into single spaces.
func cleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
