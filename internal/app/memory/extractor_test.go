package memory

import (
	"testing"
	"time"
)

func TestExtractSingleDisclosure(t *testing.T) {
	facts := Extract("I love hiking", time.Now())

	if len(facts) != 1 {
		t.Fatalf("expected 1 fact, got %d", len(facts))
	}
	if facts[0].Content != "I love hiking" {
		t.Fatalf("content must be the original text, got %q", facts[0].Content)
	}
}

func TestExtractMultipleDisclosures(t *testing.T) {
	text := "I am a developer and I love hiking"
	facts := Extract(text, time.Now())

	// "i am" and "i love" both match; one fact per phrase, duplicate
	// content, distinct identifiers.
	if len(facts) != 2 {
		t.Fatalf("expected 2 facts, got %d", len(facts))
	}
	if facts[0].ID == facts[1].ID {
		t.Fatalf("facts must have distinct identifiers")
	}
	for _, f := range facts {
		if f.Content != text {
			t.Fatalf("content must be the original text, got %q", f.Content)
		}
	}
}

func TestExtractIsCaseInsensitive(t *testing.T) {
	facts := Extract("MY FAVORITE color is blue", time.Now())
	if len(facts) != 1 {
		t.Fatalf("expected 1 fact, got %d", len(facts))
	}
}

func TestExtractNoDisclosure(t *testing.T) {
	facts := Extract("explain quantum computing", time.Now())
	if len(facts) != 0 {
		t.Fatalf("expected no facts, got %d", len(facts))
	}
}
