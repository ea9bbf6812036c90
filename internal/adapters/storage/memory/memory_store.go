package memory

import (
	"fmt"
	"sync"

	"github.com/vayuai/vayu-agent/internal/domain"
)

// MemoryStore is an in-memory implementation of domain.MemoryStore, keeping
// each user's facts in creation order.
type MemoryStore struct {
	mu    sync.RWMutex
	facts map[domain.UserID][]*domain.MemoryFact
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		facts: make(map[domain.UserID][]*domain.MemoryFact),
	}
}

func (s *MemoryStore) AppendFacts(userID domain.UserID, facts []*domain.MemoryFact) error {
	if len(facts) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.facts[userID] = append(s.facts[userID], facts...)
	return nil
}

func (s *MemoryStore) ListFacts(userID domain.UserID) ([]*domain.MemoryFact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.facts[userID]
	out := make([]*domain.MemoryFact, len(stored))
	copy(out, stored)
	return out, nil
}

func (s *MemoryStore) DeleteFact(userID domain.UserID, id domain.FactID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := s.facts[userID]
	for i, f := range stored {
		if f.ID == id {
			s.facts[userID] = append(stored[:i], stored[i+1:]...)
			return nil
		}
	}

	return fmt.Errorf("delete fact %s: %w", id, domain.ErrNotFound)
}
