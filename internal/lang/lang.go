// Package lang picks the language an answer should be written in, by asking
// the generation backend for a one-word classification with a keyword-based
// fallback.
package lang

import (
	"context"
	"strings"

	"searchpilot/internal/llm"
)

// Generator is the minimal slice of the LLM client the detector needs.
type Generator interface {
	Chat(ctx context.Context, messages []llm.Message) (string, error)
}

// Languages the detector is allowed to answer with.
var allowedLanguages = []string{
	"english", "chinese", "hindi", "spanish", "french",
	"arabic", "bengali", "portuguese", "russian", "urdu",
	"indonesian",
}

var languageAliases = map[string]string{
	"indo": "indonesian", "bahasa": "indonesian", "bahasa indonesia": "indonesian",
	"zh": "chinese", "mandarin": "chinese", "zh-cn": "chinese", "zh-hans": "chinese",
	"es": "spanish", "español": "spanish",
	"fr": "french", "français": "french",
	"pt": "portuguese", "português": "portuguese",
	"ar": "arabic",
	"bn": "bengali", "bangla": "bengali",
	"ru": "russian",
	"hi": "hindi",
	"ur": "urdu",
}

// Markers used when the LLM call fails. Checked in order; english wins when
// nothing matches.
var fallbackMarkers = []struct {
	language string
	markers  []string
}{
	{"indonesian", []string{"bahasa indonesia", "gunakan bahasa indonesia"}},
	{"spanish", []string{"español", "spanish"}},
	{"french", []string{"français", "french"}},
	{"portuguese", []string{"português", "portuguese"}},
	{"russian", []string{"русский", "russian"}},
	{"hindi", []string{"हिंदी", "hindi"}},
	{"arabic", []string{"العربية", "arabic"}},
	{"bengali", []string{"বাংলা", "bengali", "bangla"}},
	{"chinese", []string{"中文", "汉语", "mandarin", "chinese", "zh-cn"}},
	{"urdu", []string{"اردو", "urdu"}},
}

// Detector classifies text into one of the allowed answer languages.
type Detector struct {
	gen Generator
}

func NewDetector(gen Generator) *Detector {
	return &Detector{gen: gen}
}

// DetectFromText returns the best answer language for the given context text.
// It is total: any failure falls back to keyword matching, then english.
func (d *Detector) DetectFromText(ctx context.Context, text string) string {
	snippet := strings.TrimSpace(text)
	if snippet == "" {
		return "english"
	}
	if len(snippet) > 2000 {
		snippet = snippet[:2000]
	}

	if d.gen != nil {
		prompt := "From the context below, choose the best reply language.\n" +
			"Respond with ONE lowercase word from this list only: " +
			strings.Join(allowedLanguages, ", ") + ".\n\n" +
			"Context:\n" + snippet + "\n\nLanguage:"

		answer, err := d.gen.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}})
		if err == nil {
			if language, ok := resolveLanguage(answer); ok {
				return language
			}
		}
	}

	return keywordFallback(snippet)
}

// resolveLanguage normalizes an LLM answer into an allowed language name.
func resolveLanguage(answer string) (string, bool) {
	name := strings.ToLower(strings.TrimSpace(answer))
	if alias, ok := languageAliases[name]; ok {
		name = alias
	}
	for _, allowed := range allowedLanguages {
		if name == allowed {
			return allowed, true
		}
	}
	// Verbose answers still count when they contain an allowed name.
	for _, allowed := range allowedLanguages {
		if strings.Contains(name, allowed) {
			return allowed, true
		}
	}
	return "", false
}

func keywordFallback(text string) string {
	lower := strings.ToLower(text)
	for _, entry := range fallbackMarkers {
		for _, marker := range entry.markers {
			if strings.Contains(lower, marker) {
				return entry.language
			}
		}
	}
	return "english"
}
