package search

import (
	"sort"
)

// Evidence and display sizes of one ranking pass.
const (
	DefaultEvidenceSize = 6
	DefaultDisplaySize  = 10
)

// Ranking is the outcome of merging, deduplicating and ordering the results
// of all expanded queries.
type Ranking struct {
	// Evidence is the bounded top slice handed to synthesis.
	Evidence []Result
	// Display is the larger top slice kept for diagnostics.
	Display []Result
}

// rankResults deduplicates by URL (last seen wins; duplicates of one
// query/intent pair score identically) and orders by final score. Ties sort by
// URL so the ranking is deterministic regardless of the concurrent arrival
// order of the fan-out.
func rankResults(results []Result, evidenceSize, displaySize int) Ranking {
	if evidenceSize <= 0 {
		evidenceSize = DefaultEvidenceSize
	}
	if displaySize <= 0 {
		displaySize = DefaultDisplaySize
	}
	// Evidence must stay a prefix of the diagnostic slice.
	if displaySize < evidenceSize {
		displaySize = evidenceSize
	}

	unique := make(map[string]Result, len(results))
	for _, res := range results {
		unique[res.URL] = res
	}

	ranked := make([]Result, 0, len(unique))
	for _, res := range unique {
		ranked = append(ranked, res)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].FinalScore != ranked[j].FinalScore {
			return ranked[i].FinalScore > ranked[j].FinalScore
		}
		return ranked[i].URL < ranked[j].URL
	})

	r := Ranking{}
	if len(ranked) > displaySize {
		r.Display = ranked[:displaySize]
	} else {
		r.Display = ranked
	}
	if len(ranked) > evidenceSize {
		r.Evidence = ranked[:evidenceSize]
	} else {
		r.Evidence = ranked
	}
	return r
}
