package domain

import (
	"strings"
	"time"
)

type SessionID string
type UserID string
type TurnID string
type FactID string

// Mode selects the response-synthesis style for a turn.
type Mode string

const (
	ModeGeneral  Mode = "general"  // Comprehensive analysis
	ModeCreative Mode = "creative" // Narrative, exploratory
	ModeCode     Mode = "code"     // Technical implementation
	ModeImage    Mode = "image"    // Visual concept description
)

// ParseMode validates a raw mode string. Unknown values are an error,
// never a silent fallback to general.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeGeneral:
		return ModeGeneral, nil
	case ModeCreative:
		return ModeCreative, nil
	case ModeCode:
		return ModeCode, nil
	case ModeImage:
		return ModeImage, nil
	default:
		return "", ErrInvalidMode
	}
}

type Timestamp = time.Time

// User is the authenticated identity supplied by the presentation layer.
// The login flow is a stub that trusts any input.
type User struct {
	ID     UserID    `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Avatar string    `json:"avatar"`
	Joined Timestamp `json:"joined"`
}

// Settings holds the assistant preferences for the current user.
type Settings struct {
	Model          string `json:"ai_model"`
	ResponseLength string `json:"response_length"`
	MemoryEnabled  bool   `json:"memory_enabled"`
	Theme          string `json:"theme"`
}

// DefaultSettings returns the preferences a fresh user starts with.
func DefaultSettings() Settings {
	return Settings{
		Model:          "vayu-pro",
		ResponseLength: "balanced",
		MemoryEnabled:  true,
		Theme:          "dark",
	}
}
