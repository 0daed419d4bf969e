package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/uiba-agent/internal/app/briefing"
	"github.com/PabloGalante/uiba-agent/internal/domain"
	"github.com/PabloGalante/uiba-agent/internal/observability"
)

// AgentFactory builds one fresh Agent per session. Sessions never share
// conversation state.
type AgentFactory func() *briefing.Agent

type session struct {
	mu    sync.Mutex // an agent must never see overlapping calls
	agent *briefing.Agent
}

type Server struct {
	newAgent AgentFactory
	store    domain.BriefStore // may be nil

	mu       sync.RWMutex
	sessions map[domain.SessionID]*session
}

// NewServer builds the REST surface over briefing sessions.
func NewServer(newAgent AgentFactory, store domain.BriefStore) http.Handler {
	s := &Server{
		newAgent: newAgent,
		store:    store,
		sessions: make(map[domain.SessionID]*session),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealthz)

	// /sessions               → POST: open a session
	// /sessions/{id}/turns    → POST: one user turn
	// /sessions/{id}/brief    → GET: synthesize, POST: synthesize + store
	mux.HandleFunc("/sessions", s.handleSessions)
	mux.HandleFunc("/sessions/", s.handleSessionWithID)

	// /briefs and /briefs/{id} → stored briefs in the knowledge base
	mux.HandleFunc("/briefs", s.handleBriefs)
	mux.HandleFunc("/briefs/", s.handleBriefWithID)

	return chainMiddlewares(mux, withLogging, withCORS, withRequestID)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type createSessionRequest struct {
	Greeting string `json:"greeting,omitempty"`
}

type createSessionResponse struct {
	SessionID string          `json:"session_id"`
	Message   outboundMessage `json:"message"`
}

type attachmentRequest struct {
	Type        string `json:"type"`
	Content     string `json:"content"`
	Description string `json:"description,omitempty"`
}

type turnRequest struct {
	Text        string              `json:"text"`
	Attachments []attachmentRequest `json:"multimodal_content,omitempty"`
}

type outboundMessage struct {
	Type       string         `json:"message_type"`
	Text       string         `json:"text_content"`
	Structured map[string]any `json:"structured_content,omitempty"`
}

type presentBriefResponse struct {
	Stored bool                 `json:"stored"`
	Brief  *domain.ProjectBrief `json:"brief"`
}

type listBriefsResponse struct {
	BriefIDs []string `json:"brief_ids"`
}

// ─────────────────────────────────────────────
// Basic routing
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// /sessions
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateSession(w, r)
	default:
		methodNotAllowed(w)
	}
}

// /sessions/{id}/turns or /sessions/{id}/brief
func (s *Server) handleSessionWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/sessions/")
	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" {
		http.NotFound(w, r)
		return
	}

	id := domain.SessionID(parts[0])

	switch parts[1] {
	case "turns":
		if r.Method != http.MethodPost {
			methodNotAllowed(w)
			return
		}
		s.handleTurn(w, r, id)
	case "brief":
		switch r.Method {
		case http.MethodGet:
			s.handleGetBrief(w, r, id)
		case http.MethodPost:
			s.handlePresentBrief(w, r, id)
		default:
			methodNotAllowed(w)
		}
	default:
		http.NotFound(w, r)
	}
}

// /briefs
func (s *Server) handleBriefs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no brief store configured"})
		return
	}

	ids, err := s.store.ListBriefIDs(r.Context(), 50)
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, string(id))
	}
	writeJSON(w, http.StatusOK, listBriefsResponse{BriefIDs: out})
}

// /briefs/{id}
func (s *Server) handleBriefWithID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	if s.store == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no brief store configured"})
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/briefs/")
	if id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}

	brief, err := s.store.LoadBrief(r.Context(), domain.BriefDocumentID(id))
	if err != nil {
		if errors.Is(err, domain.ErrBriefNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, brief)
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			badRequest(w, "invalid JSON body")
			return
		}
	}

	id := domain.SessionID(uuid.NewString())
	sess := &session{agent: s.newAgent()}

	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()

	ctx := observability.WithSessionID(r.Context(), string(id))

	sess.mu.Lock()
	msg := sess.agent.StartInteraction(ctx, req.Greeting)
	sess.mu.Unlock()

	writeJSON(w, http.StatusCreated, createSessionResponse{
		SessionID: string(id),
		Message:   toOutboundMessage(msg),
	})
}

func (s *Server) handleTurn(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	sess, ok := s.lookup(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	turn := domain.Turn{
		Text:      req.Text,
		Timestamp: time.Now().UTC(),
	}
	for _, att := range req.Attachments {
		turn.Attachments = append(turn.Attachments, domain.AttachmentDescriptor{
			Kind:        domain.AttachmentKind(att.Type),
			Content:     att.Content,
			Description: att.Description,
		})
	}

	ctx := observability.WithSessionID(r.Context(), string(id))

	sess.mu.Lock()
	msg := sess.agent.HandleTurn(ctx, turn)
	sess.mu.Unlock()

	writeJSON(w, http.StatusOK, toOutboundMessage(msg))
}

func (s *Server) handleGetBrief(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	sess, ok := s.lookup(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	sess.mu.Lock()
	brief := sess.agent.SynthesizeBrief()
	sess.mu.Unlock()

	writeJSON(w, http.StatusOK, brief)
}

func (s *Server) handlePresentBrief(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	sess, ok := s.lookup(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	ctx := observability.WithSessionID(r.Context(), string(id))

	sess.mu.Lock()
	brief := sess.agent.SynthesizeBrief()
	stored := sess.agent.Present(ctx, brief)
	sess.mu.Unlock()

	writeJSON(w, http.StatusOK, presentBriefResponse{Stored: stored, Brief: brief})
}

// ─────────────────────────────────────────────
// Helpers
// ─────────────────────────────────────────────

func (s *Server) lookup(id domain.SessionID) (*session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

func toOutboundMessage(m domain.OutboundMessage) outboundMessage {
	return outboundMessage{
		Type:       string(m.Type),
		Text:       m.Text,
		Structured: m.Structured,
	}
}

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

func internalError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}
