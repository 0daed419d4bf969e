package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/PabloGalante/uiba-agent/internal/domain"
)

// VertexClient implements domain.GenerationClient on Vertex AI (Gemini).
// Kept as an alternative backend for deployments that already run on GCP.
type VertexClient struct {
	client *genai.Client
}

// NewVertexClient creates a Vertex AI generation client for the given
// project and location.
func NewVertexClient(ctx context.Context, projectID, location string) (*VertexClient, error) {
	if projectID == "" || location == "" {
		return nil, fmt.Errorf("llm: projectID and location are required for Vertex AI")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Project:  projectID,
		Location: location,
		Backend:  genai.BackendVertexAI,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: creating Vertex AI client: %w", err)
	}

	return &VertexClient{client: client}, nil
}

// Complete implements domain.GenerationClient using Vertex AI.
// System-role messages become the system instruction; the rest map onto
// user/model contents in order.
func (v *VertexClient) Complete(
	ctx context.Context,
	messages []domain.ChatMessage,
	params domain.CompletionParams,
) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("llm: messages must not be empty")
	}

	var systemParts []string
	var contents []*genai.Content

	for _, m := range messages {
		switch m.Role {
		case domain.RoleSystem:
			systemParts = append(systemParts, m.Content)
		case domain.RoleAgent:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	temp := params.Temperature
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: int32(params.MaxTokens),
	}
	if len(systemParts) > 0 {
		cfg.SystemInstruction = genai.NewContentFromText(strings.Join(systemParts, "\n\n"), genai.RoleUser)
	}
	if params.JSONMode {
		cfg.ResponseMIMEType = "application/json"
	}

	res, err := v.client.Models.GenerateContent(ctx, params.Model, contents, cfg)
	if err != nil {
		return "", &domain.TransportError{Err: err}
	}

	text := res.Text()
	if text == "" {
		return "", &domain.MalformedResponseError{Reason: "vertex returned empty text"}
	}

	return text, nil
}
