package domain

// AttachmentDescriptor carries non-text content a user attached to a turn.
// It only transports metadata into prompts; the content itself is never
// fetched or decoded locally.
type AttachmentDescriptor struct {
	Kind        AttachmentKind `json:"type"`
	Content     string         `json:"content"` // URL, base64 payload or raw text
	Description string         `json:"description,omitempty"`
}

// Turn is one user utterance: optional text plus optional attachments.
// Immutable once created; the conversation state owns it after append.
type Turn struct {
	Text        string                 `json:"text,omitempty"`
	Attachments []AttachmentDescriptor `json:"multimodal_content,omitempty"`
	Timestamp   Timestamp              `json:"timestamp"`
}

// DialogueEntry is one line of the append-only conversation history.
type DialogueEntry struct {
	Role Role   `json:"role"`
	Text string `json:"content"`
}

// OutboundMessage is the only type the agent returns to its caller.
type OutboundMessage struct {
	Type       MessageType    `json:"message_type"`
	Text       string         `json:"text_content"`
	Structured map[string]any `json:"structured_content,omitempty"`
}
