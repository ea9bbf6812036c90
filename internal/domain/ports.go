package domain

import "context"

// Synthesis is what the synthesizer produces for one turn.
type Synthesis struct {
	Answer  string
	Sources []Source
}

// Synthesizer defines how the core application obtains an answer for a turn.
// It is a pure function of its inputs: same text, mode and memory always
// produce the same synthesis.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, mode Mode, recentMemory []string) (Synthesis, error)
}

// SessionStore defines session persistence. Implementations surface
// ErrNotFound for unknown identifiers. GetSession and ListSessions return
// copies the caller may retain and read without further synchronization.
type SessionStore interface {
	CreateSession(session *Session) error
	AppendTurn(sessionID SessionID, turn *Turn) error
	GetSession(id SessionID) (*Session, error)
	// ListSessions returns sessions most-recently-created-first.
	ListSessions() ([]*Session, error)
	DeleteSession(id SessionID) error
	// ToggleFavorite flips the flag and returns the new value.
	ToggleFavorite(id SessionID) (bool, error)
}

// MemoryStore defines memory-fact persistence per user.
type MemoryStore interface {
	AppendFacts(userID UserID, facts []*MemoryFact) error
	// ListFacts returns a user's facts in creation order.
	ListFacts(userID UserID) ([]*MemoryFact, error)
	DeleteFact(userID UserID, id FactID) error
}
