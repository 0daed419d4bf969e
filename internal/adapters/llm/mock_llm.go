package llm

import (
	"context"
	"fmt"

	"github.com/PabloGalante/uiba-agent/internal/domain"
)

// MockLLM is a scripted generation client for local development without a
// running model server. JSON-mode calls get an empty extraction object;
// plain calls echo the latest user message.
type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

func (m *MockLLM) Complete(
	ctx context.Context,
	messages []domain.ChatMessage,
	params domain.CompletionParams,
) (string, error) {
	if len(messages) == 0 {
		return "", fmt.Errorf("llm: messages must not be empty")
	}

	if params.JSONMode {
		return "{}", nil
	}

	last := messages[len(messages)-1]
	return fmt.Sprintf("Understood. You said %q. What else should the application do?", last.Content), nil
}
