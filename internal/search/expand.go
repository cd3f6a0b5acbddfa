package search

import (
	"strconv"
	"strings"
)

// DefaultMaxQueries caps the fan-out of one search run.
const DefaultMaxQueries = 4

// queryTemplates holds the reformulation patterns per intent. "{query}" and
// "{year}" are substituted at expansion time.
var queryTemplates = map[Intent][]string{
	IntentProgramming: {
		"{query} python library documentation",
		"{query} github repository latest version",
		"{query} python package pypi",
		"{query} API documentation tutorial",
	},
	IntentCrypto: {
		"{query} price today USD",
		"{query} market cap trading volume",
		"{query} cryptocurrency latest news",
		"{query} coin analysis {year}",
	},
	IntentNews: {
		"{query} latest news {year}",
		"{query} breaking news today",
		"{query} news update recent",
		"{query} current events",
	},
	IntentAcademic: {
		"{query} research paper {year}",
		"{query} academic study latest",
		"{query} scholarly article research",
		"{query} journal publication",
	},
	IntentBusiness: {
		"{query} company financial report {year}",
		"{query} business news earnings",
		"{query} stock market analysis",
		"{query} corporate announcement",
	},
	IntentHealth: {
		"{query} medical research latest",
		"{query} health study clinical trial",
		"{query} medical news {year}",
		"{query} treatment guidelines",
	},
	IntentGeneral: {
		"{query}",
		"{query} {year}",
		"{query} latest information",
		"{query} current status",
	},
}

// expandQueries derives up to maxQueries reformulated queries from the base
// query. The expansion is deterministic for a fixed (base, intent, year); the
// returned order carries no ranking weight downstream.
func expandQueries(baseQuery string, intent Intent, maxQueries, year int) []string {
	templates, ok := queryTemplates[intent]
	if !ok {
		templates = queryTemplates[IntentGeneral]
	}
	if maxQueries <= 0 || maxQueries > len(templates) {
		maxQueries = len(templates)
	}

	yearStr := strconv.Itoa(year)
	queries := make([]string, 0, maxQueries)
	for _, tmpl := range templates[:maxQueries] {
		q := strings.ReplaceAll(tmpl, "{query}", baseQuery)
		q = strings.ReplaceAll(q, "{year}", yearStr)
		queries = append(queries, q)
	}
	return queries
}
