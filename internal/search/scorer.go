package search

import (
	"strconv"
	"strings"
)

// Final score weights.
const (
	relevanceWeight = 0.4
	qualityWeight   = 0.3
	intentWeight    = 0.3

	// crossIntentPenalty shrinks the score of results whose content belongs
	// to a conflicting intent (crypto hits for programming queries and the
	// other way around).
	crossIntentPenalty = 0.3
)

var qualityIndicators = []string{
	"official", "documentation", "whitepaper", "announcement",
	"research", "study", "report", "guide", "tutorial",
}

var spamIndicators = []string{
	"click here", "amazing", "shocking", "you won't believe",
	"one weird trick", "download now", "free download",
}

// Conflict term lists for the cross-intent penalty. Intent pairs without a
// defined conflict are not penalized.
var (
	cryptoLeakTerms      = []string{"coin", "crypto", "trading", "price usd"}
	programmingLeakTerms = []string{"python library", "documentation", "install pip"}
)

// defaultTrustTable maps domains to a static trust score. Partial entries like
// ".edu" match through the subdomain rule in sourceQuality.
func defaultTrustTable() map[string]float64 {
	return map[string]float64{
		"github.com": 0.95, "stackoverflow.com": 0.90, "docs.python.org": 0.95,
		"readthedocs.io": 0.90, "pypi.org": 0.90, "npmjs.com": 0.85,
		"developer.mozilla.org": 0.90, "w3schools.com": 0.75,

		"coinmarketcap.com": 0.85, "coingecko.com": 0.85, "coindesk.com": 0.80,
		"binance.com": 0.80, "coinbase.com": 0.80, "cointelegraph.com": 0.75,
		"blockchain.com": 0.80, "kraken.com": 0.80,

		"reuters.com": 0.90, "bloomberg.com": 0.85, "techcrunch.com": 0.80,
		"wired.com": 0.80, "arstechnica.com": 0.85, "theverge.com": 0.75,
		"cnn.com": 0.70, "bbc.com": 0.85, "cnbc.com": 0.75,

		"arxiv.org": 0.95, "scholar.google.com": 0.90, "researchgate.net": 0.85,
		"ieee.org": 0.90, "acm.org": 0.90, "nature.com": 0.95,

		"sec.gov": 0.90, "nasdaq.com": 0.85, "forbes.com": 0.75,
		"wsj.com": 0.85, "ft.com": 0.85, "marketwatch.com": 0.70,

		"medium.com": 0.60, "dev.to": 0.70, "hackernoon.com": 0.60,
		"reddit.com": 0.45, "quora.com": 0.40, "youtube.com": 0.50,

		"gov": 0.90, ".edu": 0.85, ".org": 0.75,

		"wikipedia.org": 0.80,
	}
}

// scorer computes the per-result sub-scores and the final combined score.
type scorer struct {
	trust   map[string]float64
	intents *intentTable
	year    int
}

func newScorer(trust map[string]float64, intents *intentTable, year int) *scorer {
	return &scorer{
		trust:   trust,
		intents: intents,
		year:    year,
	}
}

// score builds a fully scored Result from one validated backend hit.
func (s *scorer) score(title, rawURL, snippet, query string, intent Intent) Result {
	res := Result{
		Title:   title,
		URL:     rawURL,
		Snippet: snippet,
		Domain:  domainFromURL(rawURL),
	}
	res.SourceQuality = s.sourceQuality(res.Domain, title, snippet, intent)
	res.RelevanceScore = s.relevance(res, query, intent)
	res.IntentMatch = s.intentMatch(res, intent)
	res.FinalScore = s.finalScore(res, intent)
	return res
}

// sourceQuality estimates how trustworthy the result's origin is, in
// [0.1, 1.0]. The trust table supplies the base; quality/spam wording and the
// intent's boost/penalty domains adjust it.
func (s *scorer) sourceQuality(domain, title, snippet string, intent Intent) float64 {
	base, ok := s.trust[domain]
	if !ok {
		base = 0.5
	}

	// A subdomain of a trusted domain inherits most of its trust.
	for trusted, score := range s.trust {
		if strings.Contains(domain, trusted) && domain != trusted {
			if sub := score * 0.8; sub > base {
				base = sub
			}
		}
	}

	content := strings.ToLower(title + " " + snippet)
	for _, indicator := range qualityIndicators {
		if strings.Contains(content, indicator) {
			base += 0.05
		}
	}
	for _, spam := range spamIndicators {
		if strings.Contains(content, spam) {
			base -= 0.3
		}
	}

	p := s.intents.profile(intent)
	if containsString(p.BoostDomains, domain) {
		base += 0.2
	} else if containsString(p.PenaltyDomains, domain) {
		base -= 0.3
	}

	return clamp(base, 0.1, 1.0)
}

// relevance measures query/content term overlap in [0, 1], with bonuses for
// intent keywords, title matches and fresh-year mentions.
func (s *scorer) relevance(res Result, query string, intent Intent) float64 {
	queryTerms := termSet(query)
	content := strings.ToLower(res.Title + " " + res.Snippet)
	contentTerms := termSet(content)

	base := 0.0
	if len(queryTerms) > 0 {
		exact := 0
		for term := range queryTerms {
			if contentTerms[term] {
				exact++
			}
		}
		base = float64(exact) / float64(len(queryTerms))
	}

	semanticBonus := 0.0
	if keywords := s.intents.profile(intent).Keywords; len(keywords) > 0 {
		matches := 0
		for _, kw := range keywords {
			if strings.Contains(content, kw) {
				matches++
			}
		}
		semanticBonus = float64(matches) / float64(len(keywords)) * 0.3
	}

	titleBonus := 0.0
	if len(queryTerms) > 0 {
		title := strings.ToLower(res.Title)
		matches := 0
		for term := range queryTerms {
			if strings.Contains(title, term) {
				matches++
			}
		}
		titleBonus = float64(matches) / float64(len(queryTerms)) * 0.2
	}

	freshnessBonus := 0.0
	if strings.Contains(content, strconv.Itoa(s.year)) ||
		strings.Contains(content, strconv.Itoa(s.year-1)) {
		freshnessBonus = 0.1
	}

	total := base + semanticBonus + titleBonus + freshnessBonus
	if total > 1.0 {
		total = 1.0
	}
	return total
}

// intentMatch scores how well the result fits the classified intent, in
// [-1, 1]. General queries carry no intent signal.
func (s *scorer) intentMatch(res Result, intent Intent) float64 {
	if intent == IntentGeneral {
		return 0.0
	}

	p := s.intents.profile(intent)
	content := strings.ToLower(res.Title + " " + res.Snippet)
	score := 0.0

	if len(p.Keywords) > 0 {
		matches := 0
		for _, kw := range p.Keywords {
			if strings.Contains(content, kw) {
				matches++
			}
		}
		score += float64(matches) / float64(len(p.Keywords)) * 0.5
	}

	domain := strings.ToLower(res.Domain)
	for _, boost := range p.BoostDomains {
		if strings.Contains(domain, boost) {
			score += 0.4
			break
		}
	}
	for _, penalty := range p.PenaltyDomains {
		if strings.Contains(domain, penalty) {
			score -= 0.6
			break
		}
	}

	return clamp(score, -1.0, 1.0)
}

// finalScore combines the sub-scores and applies the cross-intent penalty,
// clamped to [0, 1].
func (s *scorer) finalScore(res Result, intent Intent) float64 {
	final := res.RelevanceScore*relevanceWeight +
		res.SourceQuality*qualityWeight +
		res.IntentMatch*intentWeight

	content := strings.ToLower(res.Title + " " + res.Snippet)
	switch intent {
	case IntentProgramming:
		if containsAny(content, cryptoLeakTerms) {
			final *= crossIntentPenalty
		}
	case IntentCrypto:
		if containsAny(content, programmingLeakTerms) {
			final *= crossIntentPenalty
		}
	}

	return clamp(final, 0.0, 1.0)
}

func termSet(text string) map[string]bool {
	terms := make(map[string]bool)
	for _, term := range strings.Fields(strings.ToLower(text)) {
		terms[term] = true
	}
	return terms
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

func containsAny(content string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(content, term) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
