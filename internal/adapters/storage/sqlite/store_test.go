package sqlite_test

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/vayuai/vayu-agent/internal/adapters/storage/sqlite"
	"github.com/vayuai/vayu-agent/internal/domain"
)

func newTestStore(t *testing.T) *sqlite.Store {
	t.Helper()

	store, err := sqlite.NewStore(filepath.Join(t.TempDir(), "vayu.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleTurn(id, question string) *domain.Turn {
	return &domain.Turn{
		ID:       domain.TurnID(id),
		Question: question,
		Answer:   "an answer",
		Sources: []domain.Source{
			{Title: "Nature Journal", URL: "#", Domain: "nature.com"},
		},
		Mode:      domain.ModeGeneral,
		State:     domain.TurnResolved,
		CreatedAt: time.Now(),
	}
}

func TestSessionRoundTrip(t *testing.T) {
	store := newTestStore(t)

	session := &domain.Session{
		ID:        "s1",
		UserID:    "user-1",
		Title:     "first question",
		Mode:      domain.ModeGeneral,
		CreatedAt: time.Now(),
		Turns:     []*domain.Turn{sampleTurn("t1", "first question")},
	}
	if err := store.CreateSession(session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if err := store.AppendTurn("s1", sampleTurn("t2", "second question")); err != nil {
		t.Fatalf("AppendTurn failed: %v", err)
	}

	got, err := store.GetSession("s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.Title != "first question" || got.Mode != domain.ModeGeneral {
		t.Fatalf("unexpected session %+v", got)
	}
	if len(got.Turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(got.Turns))
	}
	if got.Turns[0].ID != "t1" || got.Turns[1].ID != "t2" {
		t.Fatalf("turns out of order: %v, %v", got.Turns[0].ID, got.Turns[1].ID)
	}
	if len(got.Turns[0].Sources) != 1 || got.Turns[0].Sources[0].Domain != "nature.com" {
		t.Fatalf("sources did not survive the round trip: %+v", got.Turns[0].Sources)
	}
}

func TestListSessionsNewestFirst(t *testing.T) {
	store := newTestStore(t)

	for _, id := range []string{"s1", "s2", "s3"} {
		session := &domain.Session{
			ID:        domain.SessionID(id),
			UserID:    "user-1",
			Title:     id,
			Mode:      domain.ModeGeneral,
			CreatedAt: time.Now(),
		}
		if err := store.CreateSession(session); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}
	}

	sessions, err := store.ListSessions()
	if err != nil {
		t.Fatalf("ListSessions failed: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("expected 3 sessions, got %d", len(sessions))
	}
	if sessions[0].ID != "s3" || sessions[2].ID != "s1" {
		t.Fatalf("expected newest-first order, got %v %v %v", sessions[0].ID, sessions[1].ID, sessions[2].ID)
	}
}

func TestDeleteSessionRemovesTurns(t *testing.T) {
	store := newTestStore(t)

	session := &domain.Session{
		ID:        "s1",
		UserID:    "user-1",
		Title:     "doomed",
		Mode:      domain.ModeGeneral,
		CreatedAt: time.Now(),
		Turns:     []*domain.Turn{sampleTurn("t1", "doomed")},
	}
	if err := store.CreateSession(session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if err := store.DeleteSession("s1"); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err := store.GetSession("s1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.DeleteSession("s1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestToggleFavoritePersists(t *testing.T) {
	store := newTestStore(t)

	session := &domain.Session{
		ID:        "s1",
		UserID:    "user-1",
		Title:     "fav",
		Mode:      domain.ModeGeneral,
		CreatedAt: time.Now(),
	}
	if err := store.CreateSession(session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	on, err := store.ToggleFavorite("s1")
	if err != nil || !on {
		t.Fatalf("first toggle: got %v, %v", on, err)
	}

	got, err := store.GetSession("s1")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if !got.Favorite {
		t.Fatalf("favorite flag did not persist")
	}

	if _, err := store.ToggleFavorite("missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryFactRoundTrip(t *testing.T) {
	store := newTestStore(t)
	userID := domain.UserID("user-1")

	facts := []*domain.MemoryFact{
		{ID: "f1", Content: "I love hiking", CreatedAt: time.Now()},
		{ID: "f2", Content: "I work remotely", CreatedAt: time.Now()},
	}
	if err := store.AppendFacts(userID, facts); err != nil {
		t.Fatalf("AppendFacts failed: %v", err)
	}

	listed, err := store.ListFacts(userID)
	if err != nil {
		t.Fatalf("ListFacts failed: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 facts, got %d", len(listed))
	}
	if listed[0].ID != "f1" || listed[1].ID != "f2" {
		t.Fatalf("facts out of creation order: %v, %v", listed[0].ID, listed[1].ID)
	}

	// Facts are scoped per user.
	other, _ := store.ListFacts("someone-else")
	if len(other) != 0 {
		t.Fatalf("expected no facts for other user, got %d", len(other))
	}

	if err := store.DeleteFact(userID, "f1"); err != nil {
		t.Fatalf("DeleteFact failed: %v", err)
	}
	if err := store.DeleteFact(userID, "f1"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}
}

func TestAppendTurnUnknownSession(t *testing.T) {
	store := newTestStore(t)

	err := store.AppendTurn("missing", sampleTurn("t1", "hello?"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.GetSession("missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
