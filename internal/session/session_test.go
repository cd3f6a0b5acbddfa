package session

import (
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(filepath.Join(t.TempDir(), "sessions.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestCreateAndGetSession(t *testing.T) {
	store := newTestStore(t)

	id, err := store.CreateSession()
	if err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if id == "" {
		t.Fatal("Expected non-empty session ID")
	}

	session, err := store.GetSession(id)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if session == nil {
		t.Fatal("Expected session, got nil")
	}
	if session.ID != id {
		t.Errorf("Expected ID %q, got %q", id, session.ID)
	}
}

func TestGetSessionNotFound(t *testing.T) {
	store := newTestStore(t)

	session, err := store.GetSession("nonexistent")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if session != nil {
		t.Error("Expected nil for unknown session")
	}
}

func TestGetLatestSession(t *testing.T) {
	store := newTestStore(t)

	empty, err := store.GetLatestSession()
	if err != nil {
		t.Fatalf("GetLatestSession failed: %v", err)
	}
	if empty != nil {
		t.Error("Expected nil when no sessions exist")
	}

	first, _ := store.CreateSession()
	second, _ := store.CreateSession()

	// Touch the first session so it becomes the most recent.
	if err := store.UpdateSessionTime(first); err != nil {
		t.Fatalf("UpdateSessionTime failed: %v", err)
	}

	latest, err := store.GetLatestSession()
	if err != nil {
		t.Fatalf("GetLatestSession failed: %v", err)
	}
	if latest == nil || latest.ID != first {
		t.Errorf("Expected latest session %q, got %+v (other: %q)", first, latest, second)
	}
}

func TestSaveAndGetMessages(t *testing.T) {
	store := newTestStore(t)
	id, _ := store.CreateSession()

	msgs := []*Message{
		{Role: "user", Content: "first question"},
		{Role: "assistant", Content: "first answer"},
		{Role: "user", Content: "second question"},
	}
	for _, msg := range msgs {
		if err := store.SaveMessage(id, msg); err != nil {
			t.Fatalf("SaveMessage failed: %v", err)
		}
		if msg.ID == 0 {
			t.Error("Expected message ID to be set after save")
		}
	}

	got, err := store.GetMessages(id, 10)
	if err != nil {
		t.Fatalf("GetMessages failed: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("Expected 3 messages, got %d", len(got))
	}

	// Chronological order, oldest first.
	if got[0].Content != "first question" || got[2].Content != "second question" {
		t.Errorf("Messages out of order: %q ... %q", got[0].Content, got[2].Content)
	}
	if got[1].Role != "assistant" {
		t.Errorf("Expected assistant role, got %q", got[1].Role)
	}
}

func TestGetMessagesLimit(t *testing.T) {
	store := newTestStore(t)
	id, _ := store.CreateSession()

	for i := 0; i < 5; i++ {
		if err := store.SaveMessage(id, &Message{Role: "user", Content: "msg"}); err != nil {
			t.Fatalf("SaveMessage failed: %v", err)
		}
	}

	got, err := store.GetMessages(id, 2)
	if err != nil {
		t.Fatalf("GetMessages failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("Expected 2 messages, got %d", len(got))
	}
}

func TestClearSession(t *testing.T) {
	store := newTestStore(t)
	id, _ := store.CreateSession()

	store.SaveMessage(id, &Message{Role: "user", Content: "to be cleared"})
	if err := store.ClearSession(id); err != nil {
		t.Fatalf("ClearSession failed: %v", err)
	}

	got, err := store.GetMessages(id, 10)
	if err != nil {
		t.Fatalf("GetMessages failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected 0 messages after clear, got %d", len(got))
	}

	// The session itself survives a clear.
	session, err := store.GetSession(id)
	if err != nil || session == nil {
		t.Error("Expected session to survive ClearSession")
	}
}

func TestListSessions(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 3; i++ {
		if _, err := store.CreateSession(); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
	}

	sessions, err := store.ListSessions(2)
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Errorf("Expected 2 sessions, got %d", len(sessions))
	}
}

func TestMessagesAreSessionScoped(t *testing.T) {
	store := newTestStore(t)
	a, _ := store.CreateSession()
	b, _ := store.CreateSession()

	store.SaveMessage(a, &Message{Role: "user", Content: "in a"})
	store.SaveMessage(b, &Message{Role: "user", Content: "in b"})

	got, err := store.GetMessages(a, 10)
	if err != nil {
		t.Fatalf("GetMessages failed: %v", err)
	}
	if len(got) != 1 || got[0].Content != "in a" {
		t.Errorf("Expected only session-a messages, got %+v", got)
	}
}
