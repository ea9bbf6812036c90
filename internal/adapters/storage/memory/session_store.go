package memory

import (
	"fmt"
	"sync"

	"github.com/vayuai/vayu-agent/internal/domain"
)

// SessionStore is a simple in-memory implementation of domain.SessionStore.
// It is NOT persistent and is only suitable for development / local mode.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*domain.Session
	order    []domain.SessionID // most-recently-created-first
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[domain.SessionID]*domain.Session),
	}
}

func (s *SessionStore) CreateSession(session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.ID]; exists {
		return fmt.Errorf("session %s already exists", session.ID)
	}

	s.sessions[session.ID] = session
	// New sessions are prepended so listing stays newest-first.
	s.order = append([]domain.SessionID{session.ID}, s.order...)
	return nil
}

func (s *SessionStore) AppendTurn(sessionID domain.SessionID, turn *domain.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return fmt.Errorf("append turn to session %s: %w", sessionID, domain.ErrNotFound)
	}

	sess.Turns = append(sess.Turns, turn)
	return nil
}

func (s *SessionStore) GetSession(id domain.SessionID) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("get session %s: %w", id, domain.ErrNotFound)
	}

	// A copy keeps later appends from racing with the caller's reads.
	return sess.Clone(), nil
}

func (s *SessionStore) ListSessions() ([]*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Session, 0, len(s.order))
	for _, id := range s.order {
		if sess, ok := s.sessions[id]; ok {
			out = append(out, sess.Clone())
		}
	}

	return out, nil
}

func (s *SessionStore) DeleteSession(id domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("delete session %s: %w", id, domain.ErrNotFound)
	}

	delete(s.sessions, id)
	for i, sid := range s.order {
		if sid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *SessionStore) ToggleFavorite(id domain.SessionID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[id]
	if !ok {
		return false, fmt.Errorf("toggle favorite on session %s: %w", id, domain.ErrNotFound)
	}

	sess.Favorite = !sess.Favorite
	return sess.Favorite, nil
}
