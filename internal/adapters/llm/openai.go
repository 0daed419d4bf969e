package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PabloGalante/uiba-agent/internal/domain"
)

const defaultRequestTimeout = 120 * time.Second // local models can be slow

// OpenAIClient talks to any OpenAI-compatible chat-completions endpoint
// (OpenAI itself, LocalAI, vLLM, ...). One network call per Complete,
// no retries; every failure surfaces as one of the typed errors in this
// package so the caller can decide on fallback.
type OpenAIClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewOpenAIClient creates a client for baseURL (e.g. "http://localhost:8080/v1").
// The API key may be a dummy value for servers that do not check it.
func NewOpenAIClient(baseURL, apiKey string) *OpenAIClient {
	return &OpenAIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: defaultRequestTimeout},
	}
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float32         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete implements domain.GenerationClient.
func (c *OpenAIClient) Complete(
	ctx context.Context,
	messages []domain.ChatMessage,
	params domain.CompletionParams,
) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("llm: messages must not be empty")
	}

	req := chatRequest{
		Model:       params.Model,
		Messages:    make([]chatMessage, 0, len(messages)),
		Temperature: params.Temperature,
		MaxTokens:   params.MaxTokens,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, chatMessage{
			Role:    wireRole(m.Role),
			Content: m.Content,
		})
	}
	if params.JSONMode {
		req.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("llm: marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/chat/completions",
		bytes.NewReader(body),
	)
	if err != nil {
		return "", fmt.Errorf("llm: building request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", &domain.TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &domain.TransportError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &domain.StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var decoded chatResponse
	if err := json.Unmarshal(respBody, &decoded); err != nil {
		return "", &domain.MalformedResponseError{Reason: "body is not valid JSON: " + err.Error()}
	}
	if len(decoded.Choices) == 0 {
		return "", &domain.MalformedResponseError{Reason: "response has no choices"}
	}

	content := decoded.Choices[0].Message.Content
	if content == "" {
		return "", &domain.MalformedResponseError{Reason: "choices[0].message.content is empty"}
	}

	return content, nil
}

// wireRole maps domain roles onto the OpenAI wire roles. The agent's own
// utterances travel as "assistant".
func wireRole(r domain.Role) string {
	switch r {
	case domain.RoleSystem:
		return "system"
	case domain.RoleAgent:
		return "assistant"
	default:
		return "user"
	}
}
