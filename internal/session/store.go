// Package session persists linear conversation history so context survives
// restarts.
package session

import (
	"time"
)

// Store session storage interface
type Store interface {
	// Session management
	CreateSession() (string, error)
	GetSession(id string) (*Session, error)
	GetLatestSession() (*Session, error)
	ListSessions(limit int) ([]*Session, error)
	UpdateSessionTime(id string) error
	ClearSession(sessionID string) error

	// Conversation history
	SaveMessage(sessionID string, msg *Message) error
	GetMessages(sessionID string, limit int) ([]*Message, error)

	// Close connection
	Close() error
}

// Session session structure
type Session struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Message message structure
type Message struct {
	ID        int64
	SessionID string
	Role      string // "user" | "assistant" | "system"
	Content   string
	CreatedAt time.Time
}
