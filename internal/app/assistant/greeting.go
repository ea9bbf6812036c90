package assistant

import (
	"fmt"
	"math/rand"
	"strings"
)

// greetingVocabulary is the fixed set of openers that classify a turn as a
// greeting. A text matches when it equals an entry, or starts with one
// followed by a space, comma or exclamation mark.
var greetingVocabulary = []string{
	"hi",
	"hello",
	"hey",
	"good morning",
	"good afternoon",
	"good evening",
	"howdy",
	"greetings",
}

func isGreeting(text string) bool {
	lowered := strings.ToLower(text)
	for _, g := range greetingVocabulary {
		if lowered == g ||
			strings.HasPrefix(lowered, g+" ") ||
			strings.HasPrefix(lowered, g+",") ||
			strings.HasPrefix(lowered, g+"!") {
			return true
		}
	}
	return false
}

// greetingReplies are the canned answers for greeting turns. The first one
// addresses the user by display name.
var greetingReplies = []string{
	"Hello %s! How can I help you today?",
	"Hi! What would you like to explore?",
	"Hey! I'm ready to assist you. What's on your mind?",
	"Hello! What can I do for you today?",
}

// greetingReply picks one of the canned replies. The pick function is
// injectable so tests can fix the outcome.
func greetingReply(name string, pick func(n int) int) string {
	if name == "" {
		name = "there"
	}
	reply := greetingReplies[pick(len(greetingReplies))]
	if strings.Contains(reply, "%s") {
		return fmt.Sprintf(reply, name)
	}
	return reply
}

func defaultPick(n int) int {
	return rand.Intn(n)
}
