package memory

import (
	"context"

	"github.com/vayuai/vayu-agent/internal/domain"
	"github.com/vayuai/vayu-agent/internal/observability"
)

// Service holds the logic of recording and reading a user's retained memory.
type Service struct {
	store domain.MemoryStore
}

// NewService creates a memory service from a MemoryStore.
func NewService(store domain.MemoryStore) *Service {
	return &Service{
		store: store,
	}
}

// Record appends facts to a user's memory. No capacity bound is applied;
// memory accumulates until the user deletes entries.
func (s *Service) Record(ctx context.Context, userID domain.UserID, facts []*domain.MemoryFact) error {
	if len(facts) == 0 {
		return nil
	}

	log := observability.LoggerFromContext(ctx).With("user_id", userID)

	if err := s.store.AppendFacts(userID, facts); err != nil {
		log.Error("failed to record memory facts", "error", err)
		return err
	}

	log.Info("memory facts recorded", "count", len(facts))
	return nil
}

// Delete removes a single fact by identity. Returns domain.ErrNotFound when
// the fact does not exist.
func (s *Service) Delete(ctx context.Context, userID domain.UserID, id domain.FactID) error {
	log := observability.LoggerFromContext(ctx).With("user_id", userID, "fact_id", id)

	if err := s.store.DeleteFact(userID, id); err != nil {
		log.Error("failed to delete memory fact", "error", err)
		return err
	}

	log.Info("memory fact deleted")
	return nil
}

// List returns all of a user's facts in creation order.
func (s *Service) List(ctx context.Context, userID domain.UserID) ([]*domain.MemoryFact, error) {
	return s.store.ListFacts(userID)
}

// Recent returns the content of the user's last n facts, oldest first,
// for use as synthesis context.
func (s *Service) Recent(ctx context.Context, userID domain.UserID, n int) ([]string, error) {
	facts, err := s.store.ListFacts(userID)
	if err != nil {
		return nil, err
	}

	if n > 0 && len(facts) > n {
		facts = facts[len(facts)-n:]
	}

	out := make([]string, 0, len(facts))
	for _, f := range facts {
		out = append(out, f.Content)
	}
	return out, nil
}
