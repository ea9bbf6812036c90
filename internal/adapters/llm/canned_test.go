package llm_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vayuai/vayu-agent/internal/adapters/llm"
	"github.com/vayuai/vayu-agent/internal/domain"
)

func TestSynthesizeSourceTables(t *testing.T) {
	ctx := context.Background()
	synth := llm.NewCanned()

	cases := []struct {
		mode    domain.Mode
		sources int
		marker  string
	}{
		{domain.ModeGeneral, 3, "Comprehensive Analysis"},
		{domain.ModeCreative, 2, "Creative Response"},
		{domain.ModeCode, 2, "Technical Implementation"},
		{domain.ModeImage, 2, "Image Generation"},
	}

	for _, tc := range cases {
		out, err := synth.Synthesize(ctx, "Explain quantum computing", tc.mode, nil)
		if err != nil {
			t.Fatalf("Synthesize(%s) failed: %v", tc.mode, err)
		}
		if !strings.Contains(out.Answer, tc.marker) {
			t.Errorf("mode %s: answer missing marker %q", tc.mode, tc.marker)
		}
		if len(out.Sources) != tc.sources {
			t.Errorf("mode %s: expected %d sources, got %d", tc.mode, tc.sources, len(out.Sources))
		}
		for _, src := range out.Sources {
			if src.Domain == "" || src.Title == "" {
				t.Errorf("mode %s: incomplete source %+v", tc.mode, src)
			}
		}
	}
}

func TestSynthesizeIsDeterministic(t *testing.T) {
	ctx := context.Background()
	synth := llm.NewCanned()

	a, err := synth.Synthesize(ctx, "same input", domain.ModeGeneral, nil)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	b, err := synth.Synthesize(ctx, "same input", domain.ModeGeneral, nil)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if a.Answer != b.Answer {
		t.Fatalf("same inputs must produce the same answer")
	}
}

func TestSynthesizeContextualPreamble(t *testing.T) {
	ctx := context.Background()
	synth := llm.NewCanned()

	plain, err := synth.Synthesize(ctx, "a question", domain.ModeGeneral, nil)
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if strings.HasPrefix(plain.Answer, "Based on our previous conversations") {
		t.Fatalf("no memory must mean no preamble")
	}

	contextual, err := synth.Synthesize(ctx, "a question", domain.ModeGeneral, []string{"I love hiking"})
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if !strings.HasPrefix(contextual.Answer, "Based on our previous conversations, ") {
		t.Fatalf("expected preamble, got %q", contextual.Answer)
	}
}

func TestSynthesizeUnknownMode(t *testing.T) {
	ctx := context.Background()
	synth := llm.NewCanned()

	_, err := synth.Synthesize(ctx, "anything", domain.Mode("turbo"), nil)
	if !errors.Is(err, domain.ErrInvalidMode) {
		t.Fatalf("expected ErrInvalidMode, got %v", err)
	}
}
