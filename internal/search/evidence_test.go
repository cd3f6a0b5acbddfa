package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembleContext(t *testing.T) {
	evidence := []Result{
		{Title: "First", URL: "https://a", Domain: "a", Snippet: "alpha", FinalScore: 0.91, IntentMatch: 0.4},
		{Title: "Second", URL: "https://b", Domain: "b", Snippet: "beta", FinalScore: 0.52, IntentMatch: -0.1},
	}

	block := assembleContext(evidence)
	assert.Contains(t, block, "[RESULT 1]")
	assert.Contains(t, block, "[RESULT 2]")
	assert.Contains(t, block, "Title: First")
	assert.Contains(t, block, "URL: https://b")
	assert.Contains(t, block, "Final Score: 0.91")
	assert.Contains(t, block, "Intent Match: -0.10")
	assert.Contains(t, block, "Content: alpha")
}

func TestAssembleSources(t *testing.T) {
	evidence := []Result{
		{Title: "First", URL: "https://a"},
		{Title: "Second", URL: "https://b"},
	}

	sources := assembleSources(evidence)
	lines := strings.Split(sources, "\n")
	assert.Equal(t, []string{
		"- First (https://a)",
		"- Second (https://b)",
	}, lines)
}

func TestAssembleEmptyEvidence(t *testing.T) {
	assert.Empty(t, assembleContext(nil))
	assert.Empty(t, assembleSources(nil))
}

func TestBuildSynthesisPrompt(t *testing.T) {
	prompt := buildSynthesisPrompt("what is bitcoin", "[RESULT 1]\n...", "", "english", IntentCrypto)

	assert.Contains(t, prompt, "SEARCH INTENT: crypto")
	assert.Contains(t, prompt, "FORMAT EXAMPLE FOR CRYPTO:")
	assert.Contains(t, prompt, "USER QUESTION: what is bitcoin")
	assert.Contains(t, prompt, "LANGUAGE: english")
	assert.NotContains(t, prompt, "PREVIOUS CONVERSATION CONTEXT")
}

func TestBuildSynthesisPromptWithPriorContext(t *testing.T) {
	prompt := buildSynthesisPrompt("follow-up", "ctx", "User: earlier question", "spanish", IntentGeneral)

	assert.Contains(t, prompt, "PREVIOUS CONVERSATION CONTEXT:\nUser: earlier question")
	assert.Contains(t, prompt, "LANGUAGE: spanish")
}
