package domain

// MemoryFact is a retained snippet of user self-disclosure, used to add
// contextual preambles to later answers. Content is the full original turn
// text, verbatim. A single turn can yield several facts with identical
// content but distinct identifiers; that duplication is intentional, it
// preserves per-trigger provenance.
type MemoryFact struct {
	ID        FactID    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt Timestamp `json:"created_at"`
}
