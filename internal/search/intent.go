package search

import (
	"strings"
)

// Intent is the detected information need behind a query. It biases query
// expansion and result scoring.
type Intent int

const (
	IntentProgramming Intent = iota
	IntentCrypto
	IntentNews
	IntentAcademic
	IntentBusiness
	IntentHealth
	IntentGeneral
)

func (i Intent) String() string {
	switch i {
	case IntentProgramming:
		return "programming"
	case IntentCrypto:
		return "crypto"
	case IntentNews:
		return "news"
	case IntentAcademic:
		return "academic"
	case IntentBusiness:
		return "business"
	case IntentHealth:
		return "health"
	case IntentGeneral:
		return "general"
	default:
		return "unknown"
	}
}

// intentProfile holds the keyword and domain lists for one intent.
type intentProfile struct {
	Keywords       []string
	BoostDomains   []string
	PenaltyDomains []string
}

// intentTable maps intents to their profiles. Each Engine owns its own table,
// so tuning one engine never leaks into another.
type intentTable struct {
	// order is the declaration order used for classification tie-breaks.
	// IntentGeneral is the fallback and is never scored.
	order    []Intent
	profiles map[Intent]intentProfile
}

func defaultIntentTable() *intentTable {
	return &intentTable{
		order: []Intent{
			IntentProgramming, IntentCrypto, IntentNews,
			IntentAcademic, IntentBusiness, IntentHealth,
		},
		profiles: map[Intent]intentProfile{
			IntentProgramming: {
				Keywords: []string{
					"library", "package", "framework", "api", "documentation",
					"python", "javascript", "typescript", "react", "hooks",
					"npm", "pip", "install", "import", "tutorial",
					"code", "developer", "programming", "software", "github",
					"repository", "version", "release",
				},
				BoostDomains: []string{
					"github.com", "readthedocs.io", "pypi.org", "npmjs.com",
					"stackoverflow.com", "docs.python.org", "developer.mozilla.org",
				},
				PenaltyDomains: []string{
					"coinmarketcap.com", "coingecko.com", "binance.com", "coinbase.com",
				},
			},
			IntentCrypto: {
				Keywords: []string{
					"price", "trading", "coin", "token", "crypto", "cryptocurrency",
					"bitcoin", "ethereum", "blockchain", "exchange", "wallet",
					"mining", "defi", "nft", "market cap", "volume",
				},
				BoostDomains: []string{
					"coinmarketcap.com", "coingecko.com", "binance.com",
					"coinbase.com", "coindesk.com", "cointelegraph.com",
				},
				PenaltyDomains: []string{"github.com", "readthedocs.io", "pypi.org"},
			},
			IntentNews: {
				Keywords: []string{
					"news", "breaking", "latest", "today", "yesterday", "report",
					"article", "story", "journalist", "media", "press", "announcement",
				},
				BoostDomains: []string{
					"reuters.com", "bloomberg.com", "techcrunch.com",
					"cnn.com", "bbc.com", "cnbc.com",
				},
			},
			IntentAcademic: {
				Keywords: []string{
					"research", "study", "paper", "journal", "academic", "university",
					"scholar", "thesis", "publication", "peer review", "citation",
				},
				BoostDomains: []string{
					"arxiv.org", "scholar.google.com", "researchgate.net",
					"ieee.org", "acm.org", "nature.com",
				},
				PenaltyDomains: []string{"reddit.com", "quora.com", "medium.com"},
			},
			IntentBusiness: {
				Keywords: []string{
					"company", "business", "corporate", "earnings", "revenue",
					"financial", "stock", "market", "investment", "ipo",
					"merger", "acquisition",
				},
				BoostDomains: []string{
					"sec.gov", "nasdaq.com", "forbes.com",
					"wsj.com", "ft.com", "bloomberg.com",
				},
			},
			IntentHealth: {
				Keywords: []string{
					"health", "medical", "medicine", "treatment", "disease",
					"symptom", "drug", "clinical", "patient", "doctor", "hospital",
				},
				BoostDomains: []string{
					"nih.gov", "who.int", "mayoclinic.org", "webmd.com", "healthline.com",
				},
				PenaltyDomains: []string{"reddit.com", "quora.com"},
			},
			IntentGeneral: {
				BoostDomains: []string{"wikipedia.org", "britannica.com"},
			},
		},
	}
}

func (t *intentTable) profile(intent Intent) intentProfile {
	return t.profiles[intent]
}

// Classify maps a raw query to an intent by keyword overlap. The intent with
// the highest fraction of matched keywords wins; ties keep the first-declared
// intent. Queries matching nothing fall back to IntentGeneral.
func (t *intentTable) Classify(query string) Intent {
	q := strings.ToLower(query)

	best := IntentGeneral
	bestScore := 0.0
	for _, intent := range t.order {
		p := t.profiles[intent]
		if len(p.Keywords) == 0 {
			continue
		}
		matches := 0
		for _, kw := range p.Keywords {
			if strings.Contains(q, kw) {
				matches++
			}
		}
		if matches == 0 {
			continue
		}
		score := float64(matches) / float64(len(p.Keywords))
		if score > bestScore {
			best = intent
			bestScore = score
		}
	}
	return best
}
