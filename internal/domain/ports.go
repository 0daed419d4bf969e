package domain

import "context"

// ChatMessage is one role-tagged message sent to the generation service.
type ChatMessage struct {
	Role    Role
	Content string
}

// CompletionParams are the generation parameters for one completion call.
type CompletionParams struct {
	Model       string
	Temperature float32
	MaxTokens   int

	// JSONMode asserts that the system prompt instructed the model to
	// reply with a single JSON object. The client does not enforce or
	// repair the output; parsing stays with the caller.
	JSONMode bool
}

// GenerationClient defines how the core interacts with the external LLM
// service. Implementations do one network call per Complete and never
// retry; failures surface as typed errors for the caller to decide on
// fallback.
type GenerationClient interface {
	Complete(ctx context.Context, messages []ChatMessage, params CompletionParams) (string, error)
}

// BriefStore defines project-brief persistence (the shared knowledge base).
type BriefStore interface {
	StoreBrief(ctx context.Context, id BriefDocumentID, brief *ProjectBrief) error
	LoadBrief(ctx context.Context, id BriefDocumentID) (*ProjectBrief, error)
	ListBriefIDs(ctx context.Context, limit int) ([]BriefDocumentID, error)
}
