package search

import (
	"fmt"
	"strings"
)

// assembleContext formats the evidence set into the numbered context blocks
// fed to synthesis. No filtering or re-scoring happens here.
func assembleContext(evidence []Result) string {
	var b strings.Builder
	for i, res := range evidence {
		fmt.Fprintf(&b, `
[RESULT %d]
Title: %s
URL: %s
Domain: %s
Final Score: %.2f
Intent Match: %.2f
Content: %s
`, i+1, res.Title, res.URL, res.Domain, res.FinalScore, res.IntentMatch, res.Snippet)
	}
	return b.String()
}

// assembleSources formats the flat bulleted source list appended to every
// answer.
func assembleSources(evidence []Result) string {
	lines := make([]string, 0, len(evidence))
	for _, res := range evidence {
		lines = append(lines, fmt.Sprintf("- %s (%s)", res.Title, res.URL))
	}
	return strings.Join(lines, "\n")
}
