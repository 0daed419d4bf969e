package httpadapter_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	httpadapter "github.com/PabloGalante/uiba-agent/internal/adapters/http"
	"github.com/PabloGalante/uiba-agent/internal/adapters/llm"
	memstore "github.com/PabloGalante/uiba-agent/internal/adapters/storage/memory"
	"github.com/PabloGalante/uiba-agent/internal/app/briefing"
	"github.com/PabloGalante/uiba-agent/internal/domain"
)

func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	llmClient := llm.NewMockLLM()
	store := memstore.NewBriefStore()

	newAgent := func() *briefing.Agent {
		return briefing.NewAgent(llmClient, store, "mock-model")
	}

	return httpadapter.NewServer(newAgent, store)
}

func doJSON(t *testing.T, srv http.Handler, method, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t)
	w := doJSON(t, srv, http.MethodGet, "/healthz", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
}

func TestSessionLifecycle(t *testing.T) {
	srv := newTestServer(t)

	// Open a session.
	w := doJSON(t, srv, http.MethodPost, "/sessions", []byte(`{}`))
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d, body=%s", w.Code, w.Body.String())
	}

	var created struct {
		SessionID string `json:"session_id"`
		Message   struct {
			Type string `json:"message_type"`
			Text string `json:"text_content"`
		} `json:"message"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding create response: %v", err)
	}
	if created.SessionID == "" {
		t.Fatalf("expected a session id")
	}
	if created.Message.Type != string(domain.MessageGreeting) {
		t.Fatalf("expected greeting, got %q", created.Message.Type)
	}

	// One turn.
	w = doJSON(t, srv, http.MethodPost, "/sessions/"+created.SessionID+"/turns",
		[]byte(`{"text":"I want a blog platform."}`))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d, body=%s", w.Code, w.Body.String())
	}

	var turnMsg struct {
		Type string `json:"message_type"`
		Text string `json:"text_content"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &turnMsg); err != nil {
		t.Fatalf("decoding turn response: %v", err)
	}
	if turnMsg.Type != string(domain.MessageInfoUpdate) || turnMsg.Text == "" {
		t.Fatalf("unexpected turn message: %+v", turnMsg)
	}

	// Synthesized brief.
	w = doJSON(t, srv, http.MethodGet, "/sessions/"+created.SessionID+"/brief", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var brief domain.ProjectBrief
	if err := json.Unmarshal(w.Body.Bytes(), &brief); err != nil {
		t.Fatalf("decoding brief: %v", err)
	}
	if brief.ProjectName != domain.DefaultProjectName {
		t.Fatalf("unexpected project name %q", brief.ProjectName)
	}
	if len(brief.RawUserInputLog) != 1 {
		t.Fatalf("expected 1 logged turn, got %d", len(brief.RawUserInputLog))
	}

	// Present: synthesize + store.
	w = doJSON(t, srv, http.MethodPost, "/sessions/"+created.SessionID+"/brief", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var presented struct {
		Stored bool `json:"stored"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &presented); err != nil {
		t.Fatalf("decoding present response: %v", err)
	}
	if !presented.Stored {
		t.Fatalf("expected the brief to be stored")
	}

	// Stored brief is listed and retrievable.
	w = doJSON(t, srv, http.MethodGet, "/briefs", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var listed struct {
		BriefIDs []string `json:"brief_ids"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("decoding brief list: %v", err)
	}
	if len(listed.BriefIDs) != 1 {
		t.Fatalf("expected 1 stored brief, got %v", listed.BriefIDs)
	}

	w = doJSON(t, srv, http.MethodGet, "/briefs/"+listed.BriefIDs[0], nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for stored brief, got %d", w.Code)
	}
}

func TestTurnOnUnknownSession(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/sessions/nope/turns", []byte(`{"text":"hi"}`))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestEmptyTurnReturnsErrorMessage(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodPost, "/sessions", []byte(`{}`))
	var created struct {
		SessionID string `json:"session_id"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decoding create response: %v", err)
	}

	w = doJSON(t, srv, http.MethodPost, "/sessions/"+created.SessionID+"/turns", []byte(`{"text":""}`))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 with error-tagged message, got %d", w.Code)
	}

	var msg struct {
		Type string `json:"message_type"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &msg); err != nil {
		t.Fatalf("decoding turn response: %v", err)
	}
	if msg.Type != string(domain.MessageError) {
		t.Fatalf("expected error message type, got %q", msg.Type)
	}
}

func TestMissingBrief(t *testing.T) {
	srv := newTestServer(t)

	w := doJSON(t, srv, http.MethodGet, "/briefs/does-not-exist", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
