package domain

// TurnState tracks where a turn is in its lifecycle.
type TurnState string

const (
	TurnPending  TurnState = "pending"
	TurnResolved TurnState = "resolved"
	TurnFailed   TurnState = "failed"
)

// Source is a citation attached to a resolved turn. Immutable once attached;
// which sources appear is determined solely by the mode that answered.
type Source struct {
	Title  string `json:"title"`
	URL    string `json:"url"` // may be a "#" placeholder
	Domain string `json:"domain"`
}

// Turn represents one question/answer exchange.
// A turn is created pending, mutated exactly once when it resolves (or fails),
// and never mutated again.
type Turn struct {
	ID        TurnID    `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer,omitempty"` // empty until resolved
	Sources   []Source  `json:"sources,omitempty"`
	CreatedAt Timestamp `json:"created_at"`
	Mode      Mode      `json:"mode"`
	IsImage   bool      `json:"is_image"`
	State     TurnState `json:"state"`
}

// Resolved reports whether the turn reached its terminal answered state.
func (t *Turn) Resolved() bool {
	return t.State == TurnResolved
}

// Clone returns an independent copy of the turn.
func (t *Turn) Clone() *Turn {
	c := *t
	c.Sources = append([]Source(nil), t.Sources...)
	return &c
}
