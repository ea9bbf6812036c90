package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/vayuai/vayu-agent/internal/domain"
)

// Store is a durable implementation of both domain.SessionStore and
// domain.MemoryStore on a single SQLite database. One store, two interfaces,
// the same arrangement the service wiring expects from any backend.
type Store struct {
	mu sync.RWMutex
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	title      TEXT NOT NULL,
	mode       TEXT NOT NULL,
	favorite   INTEGER NOT NULL DEFAULT 0,
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS turns (
	id         TEXT PRIMARY KEY,
	session_id TEXT NOT NULL,
	question   TEXT NOT NULL,
	answer     TEXT NOT NULL,
	sources    TEXT NOT NULL,
	mode       TEXT NOT NULL,
	is_image   INTEGER NOT NULL,
	state      TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_turns_session ON turns(session_id);

CREATE TABLE IF NOT EXISTS memory_facts (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL,
	content    TEXT NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_facts_user ON memory_facts(user_id);
`

// NewStore opens (or creates) the database at path and ensures the schema.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite store requires a database path")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// ─────────────────────────────────────────
// Time and source encoding helpers
// ─────────────────────────────────────────

func encodeTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func decodeTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func encodeSources(sources []domain.Source) (string, error) {
	if len(sources) == 0 {
		return "[]", nil
	}
	raw, err := json.Marshal(sources)
	if err != nil {
		return "", fmt.Errorf("encoding sources: %w", err)
	}
	return string(raw), nil
}

func decodeSources(raw string) ([]domain.Source, error) {
	var sources []domain.Source
	if err := json.Unmarshal([]byte(raw), &sources); err != nil {
		return nil, fmt.Errorf("decoding sources: %w", err)
	}
	return sources, nil
}

// ─────────────────────────────────────────
// SessionStore implementation
// ─────────────────────────────────────────

func (s *Store) CreateSession(session *domain.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO sessions (id, user_id, title, mode, favorite, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		string(session.ID), string(session.UserID), session.Title,
		string(session.Mode), boolToInt(session.Favorite), encodeTime(session.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting session %s: %w", session.ID, err)
	}

	for _, turn := range session.Turns {
		if err := insertTurn(tx, session.ID, turn); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (s *Store) AppendTurn(sessionID domain.SessionID, turn *domain.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.sessionExists(sessionID); err != nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertTurn(tx, sessionID, turn); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) GetSession(id domain.SessionID) (*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(
		`SELECT id, user_id, title, mode, favorite, created_at FROM sessions WHERE id = ?`,
		string(id),
	)

	session, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get session %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning session %s: %w", id, err)
	}

	turns, err := s.turnsBySession(id)
	if err != nil {
		return nil, err
	}
	session.Turns = turns

	return session, nil
}

func (s *Store) ListSessions() ([]*domain.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// rowid preserves creation order even when timestamps collide.
	rows, err := s.db.Query(
		`SELECT id, user_id, title, mode, favorite, created_at FROM sessions ORDER BY rowid DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*domain.Session
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning session row: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, session := range sessions {
		turns, err := s.turnsBySession(session.ID)
		if err != nil {
			return nil, err
		}
		session.Turns = turns
	}

	return sessions, nil
}

func (s *Store) DeleteSession(id domain.SessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM sessions WHERE id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("delete session %s: %w", id, domain.ErrNotFound)
	}

	if _, err := tx.Exec(`DELETE FROM turns WHERE session_id = ?`, string(id)); err != nil {
		return fmt.Errorf("deleting turns of session %s: %w", id, err)
	}

	return tx.Commit()
}

func (s *Store) ToggleFavorite(id domain.SessionID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		`UPDATE sessions SET favorite = 1 - favorite WHERE id = ?`,
		string(id),
	)
	if err != nil {
		return false, fmt.Errorf("toggling favorite on session %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected == 0 {
		return false, fmt.Errorf("toggle favorite on session %s: %w", id, domain.ErrNotFound)
	}

	var favorite int
	row := s.db.QueryRow(`SELECT favorite FROM sessions WHERE id = ?`, string(id))
	if err := row.Scan(&favorite); err != nil {
		return false, fmt.Errorf("reading favorite of session %s: %w", id, err)
	}
	return favorite != 0, nil
}

// ─────────────────────────────────────────
// MemoryStore implementation
// ─────────────────────────────────────────

func (s *Store) AppendFacts(userID domain.UserID, facts []*domain.MemoryFact) error {
	if len(facts) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, fact := range facts {
		_, err := tx.Exec(
			`INSERT INTO memory_facts (id, user_id, content, created_at) VALUES (?, ?, ?, ?)`,
			string(fact.ID), string(userID), fact.Content, encodeTime(fact.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("inserting fact %s: %w", fact.ID, err)
		}
	}

	return tx.Commit()
}

func (s *Store) ListFacts(userID domain.UserID) ([]*domain.MemoryFact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		`SELECT id, content, created_at FROM memory_facts WHERE user_id = ? ORDER BY rowid ASC`,
		string(userID),
	)
	if err != nil {
		return nil, fmt.Errorf("listing facts: %w", err)
	}
	defer rows.Close()

	var facts []*domain.MemoryFact
	for rows.Next() {
		var id, content, createdAt string
		if err := rows.Scan(&id, &content, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning fact row: %w", err)
		}
		facts = append(facts, &domain.MemoryFact{
			ID:        domain.FactID(id),
			Content:   content,
			CreatedAt: decodeTime(createdAt),
		})
	}
	return facts, rows.Err()
}

func (s *Store) DeleteFact(userID domain.UserID, id domain.FactID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(
		`DELETE FROM memory_facts WHERE id = ? AND user_id = ?`,
		string(id), string(userID),
	)
	if err != nil {
		return fmt.Errorf("deleting fact %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("delete fact %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ─────────────────────────────────────────
// Row helpers
// ─────────────────────────────────────────

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*domain.Session, error) {
	var id, userID, title, mode, createdAt string
	var favorite int
	if err := row.Scan(&id, &userID, &title, &mode, &favorite, &createdAt); err != nil {
		return nil, err
	}
	return &domain.Session{
		ID:        domain.SessionID(id),
		UserID:    domain.UserID(userID),
		Title:     title,
		Mode:      domain.Mode(mode),
		Favorite:  favorite != 0,
		CreatedAt: decodeTime(createdAt),
	}, nil
}

func insertTurn(tx *sql.Tx, sessionID domain.SessionID, turn *domain.Turn) error {
	sources, err := encodeSources(turn.Sources)
	if err != nil {
		return err
	}

	_, err = tx.Exec(
		`INSERT INTO turns (id, session_id, question, answer, sources, mode, is_image, state, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		string(turn.ID), string(sessionID), turn.Question, turn.Answer,
		sources, string(turn.Mode), boolToInt(turn.IsImage), string(turn.State),
		encodeTime(turn.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting turn %s: %w", turn.ID, err)
	}
	return nil
}

func (s *Store) turnsBySession(sessionID domain.SessionID) ([]*domain.Turn, error) {
	rows, err := s.db.Query(
		`SELECT id, question, answer, sources, mode, is_image, state, created_at
		 FROM turns WHERE session_id = ? ORDER BY rowid ASC`,
		string(sessionID),
	)
	if err != nil {
		return nil, fmt.Errorf("listing turns of session %s: %w", sessionID, err)
	}
	defer rows.Close()

	var turns []*domain.Turn
	for rows.Next() {
		var id, question, answer, sourcesRaw, mode, state, createdAt string
		var isImage int
		if err := rows.Scan(&id, &question, &answer, &sourcesRaw, &mode, &isImage, &state, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning turn row: %w", err)
		}

		sources, err := decodeSources(sourcesRaw)
		if err != nil {
			return nil, err
		}

		turns = append(turns, &domain.Turn{
			ID:        domain.TurnID(id),
			Question:  question,
			Answer:    answer,
			Sources:   sources,
			Mode:      domain.Mode(mode),
			IsImage:   isImage != 0,
			State:     domain.TurnState(state),
			CreatedAt: decodeTime(createdAt),
		})
	}
	return turns, rows.Err()
}

func (s *Store) sessionExists(id domain.SessionID) error {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM sessions WHERE id = ?`, string(id)).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("session %s: %w", id, domain.ErrNotFound)
	}
	return err
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
