package memory_test

import (
	"errors"
	"testing"
	"time"

	memstore "github.com/vayuai/vayu-agent/internal/adapters/storage/memory"
	"github.com/vayuai/vayu-agent/internal/domain"
)

func newSession(id string) *domain.Session {
	return &domain.Session{
		ID:        domain.SessionID(id),
		UserID:    "user-1",
		Title:     "session " + id,
		Mode:      domain.ModeGeneral,
		CreatedAt: time.Now(),
	}
}

func TestSessionOrderingNewestFirst(t *testing.T) {
	store := memstore.NewSessionStore()

	for _, id := range []string{"a", "b", "c"} {
		if err := store.CreateSession(newSession(id)); err != nil {
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
	if sessions[0].ID != "c" || sessions[2].ID != "a" {
		t.Fatalf("expected newest-first order, got %v %v %v", sessions[0].ID, sessions[1].ID, sessions[2].ID)
	}
}

func TestAppendTurnPreservesOrder(t *testing.T) {
	store := memstore.NewSessionStore()
	if err := store.CreateSession(newSession("a")); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	for _, q := range []string{"one", "two", "three"} {
		turn := &domain.Turn{
			ID:       domain.TurnID(q),
			Question: q,
			State:    domain.TurnResolved,
		}
		if err := store.AppendTurn("a", turn); err != nil {
			t.Fatalf("AppendTurn failed: %v", err)
		}
	}

	sess, err := store.GetSession("a")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if len(sess.Turns) != 3 || sess.Turns[0].Question != "one" || sess.Turns[2].Question != "three" {
		t.Fatalf("turns out of order: %+v", sess.Turns)
	}

	if err := store.AppendTurn("missing", &domain.Turn{ID: "x"}); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteSession(t *testing.T) {
	store := memstore.NewSessionStore()
	if err := store.CreateSession(newSession("a")); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if err := store.DeleteSession("a"); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err := store.GetSession("a"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.DeleteSession("a"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on double delete, got %v", err)
	}

	sessions, _ := store.ListSessions()
	if len(sessions) != 0 {
		t.Fatalf("expected empty list, got %d", len(sessions))
	}
}

func TestToggleFavoriteRoundTrip(t *testing.T) {
	store := memstore.NewSessionStore()
	if err := store.CreateSession(newSession("a")); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	on, err := store.ToggleFavorite("a")
	if err != nil || !on {
		t.Fatalf("first toggle: got %v, %v", on, err)
	}
	off, err := store.ToggleFavorite("a")
	if err != nil || off {
		t.Fatalf("second toggle: got %v, %v", off, err)
	}

	if _, err := store.ToggleFavorite("missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestReadsReturnIndependentCopies(t *testing.T) {
	store := memstore.NewSessionStore()
	if err := store.CreateSession(newSession("a")); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	if err := store.AppendTurn("a", &domain.Turn{ID: "t1", Question: "one", State: domain.TurnResolved}); err != nil {
		t.Fatalf("AppendTurn failed: %v", err)
	}

	sess, err := store.GetSession("a")
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	sess.Title = "tampered"
	sess.Turns[0].Answer = "tampered"

	fresh, _ := store.GetSession("a")
	if fresh.Title == "tampered" || fresh.Turns[0].Answer == "tampered" {
		t.Fatal("mutating a returned session leaked into the store")
	}

	// A snapshot taken before an append must not grow.
	before, _ := store.GetSession("a")
	if err := store.AppendTurn("a", &domain.Turn{ID: "t2", Question: "two", State: domain.TurnResolved}); err != nil {
		t.Fatalf("AppendTurn failed: %v", err)
	}
	if len(before.Turns) != 1 {
		t.Fatalf("snapshot grew after append: %d turns", len(before.Turns))
	}

	listed, _ := store.ListSessions()
	listed[0].Turns[0].Answer = "tampered"
	fresh, _ = store.GetSession("a")
	if fresh.Turns[0].Answer == "tampered" {
		t.Fatal("mutating a listed session leaked into the store")
	}
}
