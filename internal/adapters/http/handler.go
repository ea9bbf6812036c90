package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vayuai/vayu-agent/internal/app/assistant"
	memoryapp "github.com/vayuai/vayu-agent/internal/app/memory"
	"github.com/vayuai/vayu-agent/internal/domain"
	"github.com/vayuai/vayu-agent/internal/observability"
)

type Server struct {
	assistant *assistant.Service
	memory    *memoryapp.Service
}

func NewServer(assistantSvc *assistant.Service, memorySvc *memoryapp.Service) http.Handler {
	s := &Server{
		assistant: assistantSvc,
		memory:    memorySvc,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)

	mux.HandleFunc("/auth/login", s.handleLogin)
	mux.HandleFunc("/auth/logout", s.handleLogout)

	// /messages → POST: submit a turn
	mux.HandleFunc("/messages", s.handleMessages)

	// /conversation     → GET: in-flight view
	// /conversation/new → POST: reset the view
	mux.HandleFunc("/conversation", s.handleConversation)
	mux.HandleFunc("/conversation/new", s.handleConversationNew)

	// /chats               → GET: list sessions
	// /chats/{id}          → GET: load / DELETE: delete
	// /chats/{id}/favorite → POST: toggle favorite
	mux.HandleFunc("/chats", s.handleChats)
	mux.HandleFunc("/chats/", s.handleChatWithID)

	// /memory      → GET: list facts
	// /memory/{id} → DELETE: delete one fact
	mux.HandleFunc("/memory", s.handleMemory)
	mux.HandleFunc("/memory/", s.handleMemoryWithID)

	mux.HandleFunc("/settings", s.handleSettings)
	mux.HandleFunc("/stats", s.handleStats)

	// Innermost first: logging sees the request_id set by the outer wrapper.
	return chainMiddlewares(mux, withLogging, withRequestID, withCORS)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

type userResponse struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Avatar string    `json:"avatar"`
	Joined time.Time `json:"joined"`
}

type submitRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode"`
}

type submitResponse struct {
	TurnID string `json:"turn_id"`
}

type sourceResponse struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Domain string `json:"domain"`
}

type turnResponse struct {
	ID        string           `json:"id"`
	Question  string           `json:"question"`
	Answer    string           `json:"answer,omitempty"`
	Sources   []sourceResponse `json:"sources,omitempty"`
	Mode      string           `json:"mode"`
	IsImage   bool             `json:"is_image"`
	State     string           `json:"state"`
	CreatedAt time.Time        `json:"created_at"`
}

type sessionResponse struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Mode      string         `json:"mode"`
	Favorite  bool           `json:"favorite"`
	CreatedAt time.Time      `json:"created_at"`
	Turns     []turnResponse `json:"turns,omitempty"`
	TurnCount int            `json:"turn_count"`
}

type factResponse struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type favoriteResponse struct {
	Favorite bool `json:"favorite"`
}

type statsResponse struct {
	TotalQuestions int `json:"total_questions"`
	SessionCount   int `json:"session_count"`
	MemoryCount    int `json:"memory_count"`
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}
	if req.Email == "" {
		badRequest(w, "email is required")
		return
	}

	// Stub auth: any credentials are accepted.
	name := req.Name
	if name == "" {
		name = strings.SplitN(req.Email, "@", 2)[0]
	}
	if name == "" {
		name = req.Email
	}

	avatar := []rune(name)[:1]

	user := domain.User{
		ID:     domain.UserID(uuid.NewString()),
		Name:   name,
		Email:  req.Email,
		Avatar: strings.ToUpper(string(avatar)),
		Joined: time.Now(),
	}
	s.assistant.Login(user)

	writeJSON(w, http.StatusOK, toUserResponse(user))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	s.assistant.Logout()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	mode, err := domain.ParseMode(req.Mode)
	if err != nil {
		badRequest(w, "unknown mode")
		return
	}

	turnID, err := s.assistant.Submit(r.Context(), req.Text, mode)
	switch {
	case errors.Is(err, domain.ErrEmptyInput), errors.Is(err, domain.ErrUnauthenticated):
		// Invalid submissions are absorbed, not surfaced.
		w.WriteHeader(http.StatusNoContent)
		return
	case err != nil:
		internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, submitResponse{TurnID: string(turnID)})
}

func (s *Server) handleConversation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	writeJSON(w, http.StatusOK, toTurnsResponse(s.assistant.Conversation()))
}

func (s *Server) handleConversationNew(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w)
		return
	}
	s.assistant.StartNew()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleChats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	sessions, err := s.assistant.Sessions()
	if err != nil {
		internalError(w, r, err)
		return
	}

	out := make([]sessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		out = append(out, toSessionResponse(sess, false))
	}
	writeJSON(w, http.StatusOK, out)
}

// /chats/{id} or /chats/{id}/favorite
func (s *Server) handleChatWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/chats/")
	if path == "" {
		http.NotFound(w, r)
		return
	}

	parts := strings.Split(path, "/")
	id := domain.SessionID(parts[0])

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			s.handleLoadChat(w, r, id)
		case http.MethodDelete:
			s.handleDeleteChat(w, r, id)
		default:
			methodNotAllowed(w)
		}
		return
	}

	if len(parts) == 2 && parts[1] == "favorite" {
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		s.handleToggleFavorite(w, r, id)
		return
	}

	http.NotFound(w, r)
}

func (s *Server) handleLoadChat(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	session, err := s.assistant.LoadSession(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toSessionResponse(session, true))
}

func (s *Server) handleDeleteChat(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	err := s.assistant.DeleteSession(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		internalError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	favorite, err := s.assistant.ToggleFavorite(r.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, favoriteResponse{Favorite: favorite})
}

func (s *Server) handleMemory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	user := s.assistant.CurrentUser()
	if user == nil {
		unauthorized(w)
		return
	}

	facts, err := s.memory.List(r.Context(), user.ID)
	if err != nil {
		internalError(w, r, err)
		return
	}

	out := make([]factResponse, 0, len(facts))
	for _, f := range facts {
		out = append(out, factResponse{
			ID:        string(f.ID),
			Content:   f.Content,
			CreatedAt: f.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleMemoryWithID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		methodNotAllowed(w)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/memory/")
	if id == "" {
		http.NotFound(w, r)
		return
	}

	user := s.assistant.CurrentUser()
	if user == nil {
		unauthorized(w)
		return
	}

	err := s.memory.Delete(r.Context(), user.ID, domain.FactID(id))
	if errors.Is(err, domain.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		internalError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.assistant.Settings())
	case http.MethodPut:
		var settings domain.Settings
		if err := json.NewDecoder(r.Body).Decode(&settings); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}
		s.assistant.UpdateSettings(settings)
		writeJSON(w, http.StatusOK, settings)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}

	sessions, err := s.assistant.Sessions()
	if err != nil {
		internalError(w, r, err)
		return
	}

	memoryCount := 0
	if user := s.assistant.CurrentUser(); user != nil {
		facts, err := s.memory.List(r.Context(), user.ID)
		if err != nil {
			internalError(w, r, err)
			return
		}
		memoryCount = len(facts)
	}

	writeJSON(w, http.StatusOK, statsResponse{
		TotalQuestions: s.assistant.QuestionCount(),
		SessionCount:   len(sessions),
		MemoryCount:    memoryCount,
	})
}

// ─────────────────────────────────────────────
// Response helpers
// ─────────────────────────────────────────────

func toUserResponse(u domain.User) userResponse {
	return userResponse{
		ID:     string(u.ID),
		Name:   u.Name,
		Email:  u.Email,
		Avatar: u.Avatar,
		Joined: u.Joined,
	}
}

func toTurnResponse(t *domain.Turn) turnResponse {
	sources := make([]sourceResponse, 0, len(t.Sources))
	for _, src := range t.Sources {
		sources = append(sources, sourceResponse(src))
	}
	return turnResponse{
		ID:        string(t.ID),
		Question:  t.Question,
		Answer:    t.Answer,
		Sources:   sources,
		Mode:      string(t.Mode),
		IsImage:   t.IsImage,
		State:     string(t.State),
		CreatedAt: t.CreatedAt,
	}
}

func toTurnsResponse(turns []*domain.Turn) []turnResponse {
	out := make([]turnResponse, 0, len(turns))
	for _, t := range turns {
		out = append(out, toTurnResponse(t))
	}
	return out
}

func toSessionResponse(sess *domain.Session, includeTurns bool) sessionResponse {
	resp := sessionResponse{
		ID:        string(sess.ID),
		Title:     sess.Title,
		Mode:      string(sess.Mode),
		Favorite:  sess.Favorite,
		CreatedAt: sess.CreatedAt,
		TurnCount: len(sess.Turns),
	}
	if includeTurns {
		resp.Turns = toTurnsResponse(sess.Turns)
	}
	return resp
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func unauthorized(w http.ResponseWriter) {
	writeJSON(w, http.StatusUnauthorized, map[string]string{
		"error": "authentication required",
	})
}

func internalError(w http.ResponseWriter, r *http.Request, err error) {
	observability.LoggerFromContext(r.Context()).Error("internal server error",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
