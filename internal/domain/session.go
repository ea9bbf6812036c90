package domain

// Session is a titled, ordered container of turns, the unit of chat history.
type Session struct {
	ID        SessionID `json:"id"`
	UserID    UserID    `json:"user_id"`
	Title     string    `json:"title"` // first turn's question, truncated; fixed at creation
	Turns     []*Turn   `json:"turns"`
	CreatedAt Timestamp `json:"created_at"`
	Mode      Mode      `json:"mode"` // mode of the first turn
	Favorite  bool      `json:"favorite"`
}

// Clone returns an independent copy of the session, turns included.
func (s *Session) Clone() *Session {
	c := *s
	c.Turns = make([]*Turn, len(s.Turns))
	for i, t := range s.Turns {
		c.Turns[i] = t.Clone()
	}
	return &c
}

// MaxTitleLen caps how much of the first question becomes the session title.
const MaxTitleLen = 60

// TitleFromQuestion derives a session title from its first question.
func TitleFromQuestion(question string) string {
	runes := []rune(question)
	if len(runes) > MaxTitleLen {
		return string(runes[:MaxTitleLen])
	}
	return question
}
