package lang

import (
	"context"
	"errors"
	"testing"

	"searchpilot/internal/llm"
)

type stubGenerator struct {
	answer string
	err    error
}

func (s *stubGenerator) Chat(_ context.Context, _ []llm.Message) (string, error) {
	return s.answer, s.err
}

func TestDetectFromText_LLMAnswer(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   string
	}{
		{"plain answer", "spanish", "spanish"},
		{"uppercase answer", "SPANISH", "spanish"},
		{"padded answer", "  french \n", "french"},
		{"alias answer", "mandarin", "chinese"},
		{"verbose answer", "The language is portuguese.", "portuguese"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDetector(&stubGenerator{answer: tt.answer})
			got := d.DetectFromText(context.Background(), "some context text")
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDetectFromText_FallbackOnLLMError(t *testing.T) {
	d := NewDetector(&stubGenerator{err: errors.New("backend down")})

	got := d.DetectFromText(context.Background(), "tolong jawab dalam bahasa indonesia")
	if got != "indonesian" {
		t.Errorf("Expected 'indonesian', got %q", got)
	}
}

func TestDetectFromText_FallbackOnGibberishAnswer(t *testing.T) {
	d := NewDetector(&stubGenerator{answer: "klingon"})

	got := d.DetectFromText(context.Background(), "explica esto en español por favor")
	if got != "spanish" {
		t.Errorf("Expected 'spanish', got %q", got)
	}
}

func TestDetectFromText_DefaultsToEnglish(t *testing.T) {
	d := NewDetector(&stubGenerator{err: errors.New("down")})

	got := d.DetectFromText(context.Background(), "plain text with no language markers")
	if got != "english" {
		t.Errorf("Expected 'english', got %q", got)
	}
}

func TestDetectFromText_EmptyText(t *testing.T) {
	d := NewDetector(&stubGenerator{answer: "spanish"})

	got := d.DetectFromText(context.Background(), "   ")
	if got != "english" {
		t.Errorf("Expected 'english' for empty text, got %q", got)
	}
}

func TestDetectFromText_NilGenerator(t *testing.T) {
	d := NewDetector(nil)

	got := d.DetectFromText(context.Background(), "中文内容在这里")
	if got != "chinese" {
		t.Errorf("Expected 'chinese' from keyword fallback, got %q", got)
	}
}

func TestKeywordFallbackOrder(t *testing.T) {
	// Indonesian markers are checked before spanish.
	got := keywordFallback("bahasa indonesia y español")
	if got != "indonesian" {
		t.Errorf("Expected 'indonesian', got %q", got)
	}
}

func TestResolveLanguage(t *testing.T) {
	if lang, ok := resolveLanguage("russian"); !ok || lang != "russian" {
		t.Errorf("Expected russian, got %q (ok=%v)", lang, ok)
	}
	if lang, ok := resolveLanguage("zh"); !ok || lang != "chinese" {
		t.Errorf("Expected chinese for alias zh, got %q (ok=%v)", lang, ok)
	}
	if _, ok := resolveLanguage("elvish"); ok {
		t.Error("Expected no match for unknown language")
	}
}
