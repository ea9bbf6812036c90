package assistant

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	memoryapp "github.com/vayuai/vayu-agent/internal/app/memory"
	"github.com/vayuai/vayu-agent/internal/domain"
	"github.com/vayuai/vayu-agent/internal/observability"
)

// DefaultLatency is the simulated thinking time before a turn resolves.
const DefaultLatency = 2 * time.Second

// recentMemoryWindow is how many of the newest facts feed the synthesizer.
const recentMemoryWindow = 3

// Service owns the assistant's conversational state: the in-flight
// conversation view, the active session pointer, the question counter and
// the authenticated user. Every mutation goes through one of its methods
// under a single mutex, so concurrent resolutions apply as one logical step
// each.
type Service struct {
	synth        domain.Synthesizer
	sessionStore domain.SessionStore
	memory       *memoryapp.Service

	now      func() time.Time
	schedule func(d time.Duration, fn func())
	pick     func(n int) int
	latency  time.Duration

	mu            sync.Mutex
	user          *domain.User
	settings      domain.Settings
	conversation  []*domain.Turn
	activeSession domain.SessionID // empty when no session is active
	questionCount int
}

// Option customizes a Service, mainly for deterministic tests.
type Option func(*Service)

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLatency replaces the simulated resolution latency.
func WithLatency(d time.Duration) Option {
	return func(s *Service) { s.latency = d }
}

// WithScheduler replaces how resolution callbacks are deferred. The default
// uses time.AfterFunc; tests can run the callback inline.
func WithScheduler(schedule func(d time.Duration, fn func())) Option {
	return func(s *Service) { s.schedule = schedule }
}

// WithGreetingPicker fixes which canned greeting reply is chosen.
func WithGreetingPicker(pick func(n int) int) Option {
	return func(s *Service) { s.pick = pick }
}

func NewService(
	synth domain.Synthesizer,
	sessionStore domain.SessionStore,
	memory *memoryapp.Service,
	opts ...Option,
) *Service {
	s := &Service{
		synth:        synth,
		sessionStore: sessionStore,
		memory:       memory,
		now:          time.Now,
		pick:         defaultPick,
		latency:      DefaultLatency,
		settings:     domain.DefaultSettings(),
	}
	s.schedule = func(d time.Duration, fn func()) {
		time.AfterFunc(d, fn)
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login sets the authenticated user. The flow trusts any identity the
// presentation layer supplies.
func (s *Service) Login(user domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &user
}

// Logout clears the user and the in-flight view. Persisted sessions and
// memory facts survive.
func (s *Service) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.conversation = nil
	s.activeSession = ""
}

// CurrentUser returns the authenticated user, or nil.
func (s *Service) CurrentUser() *domain.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Settings returns the current preferences.
func (s *Service) Settings() domain.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings replaces the preferences.
func (s *Service) UpdateSettings(settings domain.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
}

// Submit accepts a user turn. It validates input, classifies greetings,
// appends a pending turn to the conversation view, harvests memory facts,
// and schedules resolution after the simulated latency. It never blocks on
// resolution: a second submission while one is pending creates a second
// independent pending turn.
//
// Blank text returns domain.ErrEmptyInput and a missing user returns
// domain.ErrUnauthenticated; neither mutates any state.
func (s *Service) Submit(ctx context.Context, text string, mode domain.Mode) (domain.TurnID, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return "", domain.ErrEmptyInput
	}

	greeting := isGreeting(trimmed)

	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return "", domain.ErrUnauthenticated
	}

	userID := s.user.ID
	memoryEnabled := s.settings.MemoryEnabled

	turn := &domain.Turn{
		ID:        domain.TurnID(uuid.NewString()),
		Question:  trimmed,
		CreatedAt: s.now(),
		Mode:      mode,
		IsImage:   mode == domain.ModeImage,
		State:     domain.TurnPending,
	}

	s.conversation = append(s.conversation, turn)
	s.questionCount++
	s.mu.Unlock()

	log := observability.LoggerFromContext(ctx).With(
		"turn_id", turn.ID,
		"user_id", userID,
		"mode", mode,
	)
	log.Info("turn submitted", "greeting", greeting)

	if memoryEnabled && !greeting {
		facts := memoryapp.Extract(trimmed, turn.CreatedAt)
		if err := s.memory.Record(ctx, userID, facts); err != nil {
			log.Error("failed to record extracted memory", "error", err)
		}
	}

	s.schedule(s.latency, func() {
		s.resolve(ctx, turn, greeting)
	})

	return turn.ID, nil
}

// resolve completes a pending turn: it synthesizes (or picks a greeting
// reply), writes the answer into the turn, and commits the turn into the
// session store. The active-session pointer is read here, at resolution
// time, never captured at submission; switching sessions while a turn is
// pending changes where it lands.
func (s *Service) resolve(ctx context.Context, turn *domain.Turn, greeting bool) {
	log := observability.LoggerFromContext(ctx).With("turn_id", turn.ID)

	s.mu.Lock()
	var userID domain.UserID
	var userName string
	if s.user != nil {
		userID = s.user.ID
		userName = s.user.Name
	}
	pickFn := s.pick
	s.mu.Unlock()

	var answer string
	var sources []domain.Source
	failed := false

	if greeting {
		answer = greetingReply(userName, pickFn)
	} else {
		recent, err := s.memory.Recent(ctx, userID, recentMemoryWindow)
		if err != nil {
			log.Error("failed to load recent memory", "error", err)
			recent = nil
		}

		synthesis, err := s.synth.Synthesize(ctx, turn.Question, turn.Mode, recent)
		if err != nil {
			log.Error("synthesis failed", "error", err)
			failed = true
		} else {
			answer = synthesis.Answer
			sources = synthesis.Sources
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if failed {
		turn.State = domain.TurnFailed
	} else {
		turn.Answer = answer
		turn.Sources = sources
		turn.State = domain.TurnResolved
	}

	if err := s.commitLocked(turn, userID); err != nil {
		log.Error("failed to commit turn", "error", err)
		return
	}

	log.Info("turn resolved", "state", turn.State, "session_id", s.activeSession)
}

// commitLocked places a completed turn into the active session, creating a
// new session when none is active. Callers must hold s.mu.
func (s *Service) commitLocked(turn *domain.Turn, userID domain.UserID) error {
	if s.activeSession == "" {
		session := &domain.Session{
			ID:        domain.SessionID(uuid.NewString()),
			UserID:    userID,
			Title:     domain.TitleFromQuestion(turn.Question),
			Turns:     []*domain.Turn{turn},
			CreatedAt: s.now(),
			Mode:      turn.Mode,
		}
		if err := s.sessionStore.CreateSession(session); err != nil {
			return err
		}
		s.activeSession = session.ID
		return nil
	}

	return s.sessionStore.AppendTurn(s.activeSession, turn)
}

// StartNew clears the in-flight view and unsets the active session. No
// persisted session is deleted.
func (s *Service) StartNew() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversation = nil
	s.activeSession = ""
}

// LoadSession replaces the in-flight view with a stored session's turns and
// marks it active. Returns domain.ErrNotFound when the session is missing.
func (s *Service) LoadSession(ctx context.Context, id domain.SessionID) (*domain.Session, error) {
	session, err := s.sessionStore.GetSession(id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversation = append([]*domain.Turn(nil), session.Turns...)
	s.activeSession = id

	observability.LoggerFromContext(ctx).Info("session loaded",
		"session_id", id,
		"turn_count", len(session.Turns),
	)
	return session, nil
}

// DeleteSession removes a stored session. If it was active, the in-flight
// view and the active pointer are cleared too.
func (s *Service) DeleteSession(ctx context.Context, id domain.SessionID) error {
	if err := s.sessionStore.DeleteSession(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.activeSession == id {
		s.conversation = nil
		s.activeSession = ""
	}

	observability.LoggerFromContext(ctx).Info("session deleted", "session_id", id)
	return nil
}

// ToggleFavorite flips a session's favorite flag and returns the new value.
func (s *Service) ToggleFavorite(ctx context.Context, id domain.SessionID) (bool, error) {
	return s.sessionStore.ToggleFavorite(id)
}

// Sessions lists stored sessions, most recently created first.
func (s *Service) Sessions() ([]*domain.Session, error) {
	return s.sessionStore.ListSessions()
}

// Conversation returns a snapshot of the in-flight view, including pending
// and failed turns, in submission order. The snapshot is a deep copy taken
// under the service mutex, so callers may read it while other turns resolve.
func (s *Service) Conversation() []*domain.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Turn, len(s.conversation))
	for i, t := range s.conversation {
		out[i] = t.Clone()
	}
	return out
}

// ActiveSession returns the session new turns will commit to, or empty.
func (s *Service) ActiveSession() domain.SessionID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeSession
}

// QuestionCount returns how many turns have been submitted.
func (s *Service) QuestionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questionCount
}
