package llm_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PabloGalante/uiba-agent/internal/adapters/llm"
	"github.com/PabloGalante/uiba-agent/internal/domain"
)

func testMessages() []domain.ChatMessage {
	return []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: "You are a helpful assistant."},
		{Role: domain.RoleAgent, Content: "How can I help?"},
		{Role: domain.RoleUser, Content: "I want a blog platform."},
	}
}

func TestCompleteSuccess(t *testing.T) {
	var gotBody map[string]any
	var gotAuth, gotPath string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decoding request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Sounds great!"}}]}`))
	}))
	defer srv.Close()

	client := llm.NewOpenAIClient(srv.URL, "secret-key")

	text, err := client.Complete(context.Background(), testMessages(), domain.CompletionParams{
		Model:       "devstral-small",
		Temperature: 0.7,
		MaxTokens:   1500,
		JSONMode:    true,
	})
	if err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if text != "Sounds great!" {
		t.Fatalf("unexpected text %q", text)
	}

	if gotPath != "/chat/completions" {
		t.Fatalf("unexpected path %q", gotPath)
	}
	if gotAuth != "Bearer secret-key" {
		t.Fatalf("unexpected auth header %q", gotAuth)
	}
	if gotBody["model"] != "devstral-small" {
		t.Fatalf("unexpected model %v", gotBody["model"])
	}

	rf, ok := gotBody["response_format"].(map[string]any)
	if !ok || rf["type"] != "json_object" {
		t.Fatalf("json mode must request response_format json_object, got %v", gotBody["response_format"])
	}

	msgs := gotBody["messages"].([]any)
	if len(msgs) != 3 {
		t.Fatalf("expected 3 wire messages, got %d", len(msgs))
	}
	agentMsg := msgs[1].(map[string]any)
	if agentMsg["role"] != "assistant" {
		t.Fatalf("agent role must travel as assistant, got %v", agentMsg["role"])
	}
}

func TestCompleteOmitsResponseFormatWithoutJSONMode(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer srv.Close()

	client := llm.NewOpenAIClient(srv.URL, "k")
	if _, err := client.Complete(context.Background(), testMessages(), domain.CompletionParams{Model: "m"}); err != nil {
		t.Fatalf("Complete failed: %v", err)
	}
	if _, present := gotBody["response_format"]; present {
		t.Fatalf("response_format must be absent without json mode")
	}
}

func TestCompleteNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := llm.NewOpenAIClient(srv.URL, "k")
	_, err := client.Complete(context.Background(), testMessages(), domain.CompletionParams{Model: "m"})

	var statusErr *domain.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Fatalf("unexpected status %d", statusErr.StatusCode)
	}
}

func TestCompleteMalformedEnvelope(t *testing.T) {
	cases := map[string]string{
		"no choices":    `{"choices":[]}`,
		"empty content": `{"choices":[{"message":{"content":""}}]}`,
		"not json":      `<html>gateway error</html>`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			client := llm.NewOpenAIClient(srv.URL, "k")
			_, err := client.Complete(context.Background(), testMessages(), domain.CompletionParams{Model: "m"})

			var malformedErr *domain.MalformedResponseError
			if !errors.As(err, &malformedErr) {
				t.Fatalf("expected MalformedResponseError, got %v", err)
			}
		})
	}
}

func TestCompleteTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	client := llm.NewOpenAIClient(srv.URL, "k")
	_, err := client.Complete(context.Background(), testMessages(), domain.CompletionParams{Model: "m"})

	var transportErr *domain.TransportError
	if !errors.As(err, &transportErr) {
		t.Fatalf("expected TransportError, got %v", err)
	}
}

func TestCompleteRejectsEmptyMessages(t *testing.T) {
	client := llm.NewOpenAIClient("http://localhost:0", "k")
	if _, err := client.Complete(context.Background(), nil, domain.CompletionParams{Model: "m"}); err == nil {
		t.Fatalf("expected error for empty messages")
	}
}
