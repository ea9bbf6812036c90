package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/vayuai/vayu-agent/internal/domain"
)

// Canned synthesizes answers from fixed per-mode templates. It stands in the
// slot a real model client would occupy; there is no inference and no
// network, the answer is a deterministic function of text, mode and memory.
type Canned struct{}

func NewCanned() *Canned {
	return &Canned{}
}

// Synthesize interpolates the turn's text into the mode's template and
// attaches the mode's citation table. A non-empty recentMemory prefixes the
// contextual preamble. Unknown modes fail with domain.ErrInvalidMode.
func (c *Canned) Synthesize(ctx context.Context, text string, mode domain.Mode, recentMemory []string) (domain.Synthesis, error) {
	var body string

	switch mode {
	case domain.ModeGeneral:
		body = fmt.Sprintf(generalTemplate, text, strings.ToLower(text))
	case domain.ModeCreative:
		body = fmt.Sprintf(creativeTemplate, text, strings.ToLower(text))
	case domain.ModeCode:
		body = codeTemplate
	case domain.ModeImage:
		body = fmt.Sprintf(imageTemplate, text)
	default:
		return domain.Synthesis{}, fmt.Errorf("synthesize mode %q: %w", mode, domain.ErrInvalidMode)
	}

	answer := body
	if len(recentMemory) > 0 {
		answer = contextualPreamble + body
	}

	sources := sourcesByMode[mode]
	out := make([]domain.Source, len(sources))
	copy(out, sources)

	return domain.Synthesis{
		Answer:  answer,
		Sources: out,
	}, nil
}
