package memory

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vayuai/vayu-agent/internal/domain"
)

// disclosurePhrases is the fixed vocabulary of self-disclosure triggers.
var disclosurePhrases = []string{
	"i like",
	"i love",
	"my favorite",
	"i prefer",
	"i am",
	"i work",
}

// Extract scans text for self-disclosure phrases and yields one fact per
// phrase found. Content is always the full original text, not lowercased,
// so a turn hitting several phrases produces duplicate content under
// distinct identifiers. That multiplicity is kept on purpose.
func Extract(text string, now time.Time) []*domain.MemoryFact {
	lowered := strings.ToLower(text)

	var facts []*domain.MemoryFact
	for _, phrase := range disclosurePhrases {
		if strings.Contains(lowered, phrase) {
			facts = append(facts, &domain.MemoryFact{
				ID:        domain.FactID(uuid.NewString()),
				Content:   text,
				CreatedAt: now,
			})
		}
	}

	return facts
}
