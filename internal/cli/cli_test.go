package cli

import (
	"path/filepath"
	"strings"
	"testing"

	"searchpilot/internal/session"
)

func TestVersion(t *testing.T) {
	if Version != "0.1.0" {
		t.Errorf("Expected Version to be '0.1.0', got '%s'", Version)
	}
}

func newTestApp(t *testing.T) *app {
	t.Helper()
	store, err := session.NewSQLiteStore(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	id, err := store.CreateSession()
	if err != nil {
		t.Fatalf("Failed to create session: %v", err)
	}
	return &app{store: store, sessionID: id}
}

func TestPriorContextEmpty(t *testing.T) {
	a := newTestApp(t)
	if got := a.priorContext(); got != "" {
		t.Errorf("Expected empty prior context, got %q", got)
	}
}

func TestPriorContextFormatsHistory(t *testing.T) {
	a := newTestApp(t)
	a.saveExchange("what is golang", "Golang is a programming language.")

	got := a.priorContext()
	if !strings.Contains(got, "User: what is golang") {
		t.Errorf("Expected user line, got %q", got)
	}
	if !strings.Contains(got, "Assistant: Golang is a programming language.") {
		t.Errorf("Expected assistant line, got %q", got)
	}
}

func TestPriorContextTruncatesLongMessages(t *testing.T) {
	a := newTestApp(t)
	long := strings.Repeat("x", 500)
	a.saveExchange(long, "short")

	got := a.priorContext()
	if strings.Contains(got, long) {
		t.Error("Expected long message to be truncated")
	}
	if !strings.Contains(got, "...") {
		t.Errorf("Expected truncation marker, got %q", got)
	}
}

func TestSaveExchangeSkipsEmptyAnswer(t *testing.T) {
	a := newTestApp(t)
	a.saveExchange("question", "")

	msgs, err := a.store.GetMessages(a.sessionID, 10)
	if err != nil {
		t.Fatalf("GetMessages failed: %v", err)
	}
	if len(msgs) != 1 {
		t.Errorf("Expected only the user message, got %d messages", len(msgs))
	}
}
