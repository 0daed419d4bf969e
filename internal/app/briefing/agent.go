package briefing

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/PabloGalante/uiba-agent/internal/domain"
	"github.com/PabloGalante/uiba-agent/internal/observability"
)

// DefaultGreeting opens a session unless the caller provides its own text.
const DefaultGreeting = "Hello! I'm here to help you define your SaaS application. What are you envisioning?"

// fallbackUtterance is returned when response generation fails; the agent
// always replies with something.
const fallbackUtterance = "I'm processing your input. What's next?"

const emptyTurnReply = "I didn't catch any text in that message. Could you describe what you have in mind?"

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 1500
)

// Agent drives one requirements-gathering session: it interprets each
// user turn into structured fragments, accumulates them, keeps the
// conversation going, and synthesizes the final project brief.
//
// An Agent owns its conversation state exclusively. It is not safe for
// concurrent use; run one Agent per session and serialize calls to it.
type Agent struct {
	llm   domain.GenerationClient
	store domain.BriefStore // may be nil; Present then short-circuits
	model string

	temperature float32
	maxTokens   int
	now         func() time.Time

	history   []domain.DialogueEntry
	state     *FragmentsState
	fragments []domain.RequirementFragment
}

// NewAgent creates an agent bound to a generation client and model. The
// store may be nil when no knowledge base is configured.
func NewAgent(llm domain.GenerationClient, store domain.BriefStore, model string) *Agent {
	return &Agent{
		llm:         llm,
		store:       store,
		model:       model,
		temperature: defaultTemperature,
		maxTokens:   defaultMaxTokens,
		now:         time.Now,
		state:       newFragmentsState(),
	}
}

// StartInteraction resets the session to its empty defaults and opens it
// with a greeting. Always succeeds; no external call is made.
func (a *Agent) StartInteraction(ctx context.Context, greeting string) domain.OutboundMessage {
	if greeting == "" {
		greeting = DefaultGreeting
	}

	a.history = nil
	a.state = newFragmentsState()
	a.fragments = nil

	a.history = append(a.history, domain.DialogueEntry{Role: domain.RoleAgent, Text: greeting})

	observability.LoggerFromContext(ctx).Info("interaction started")

	return domain.OutboundMessage{Type: domain.MessageGreeting, Text: greeting}
}

// HandleTurn runs one full turn cycle: append the turn, ask the model for
// a structured interpretation, merge it, ask for the next conversational
// utterance, and return it. Interpretation failures never block the turn;
// they only mean no new fragments this round.
func (a *Agent) HandleTurn(ctx context.Context, turn domain.Turn) domain.OutboundMessage {
	log := observability.LoggerFromContext(ctx)

	if strings.TrimSpace(turn.Text) == "" {
		log.Warn("rejected empty turn", "error", domain.ErrEmptyTurn)
		return domain.OutboundMessage{Type: domain.MessageError, Text: emptyTurnReply}
	}

	a.history = append(a.history, domain.DialogueEntry{Role: domain.RoleUser, Text: turn.Text})
	a.state.RawUserInputLog = append(a.state.RawUserInputLog, turn)

	a.interpretTurn(ctx, turn)

	reply, msgType := a.generateReply(ctx)
	a.history = append(a.history, domain.DialogueEntry{Role: domain.RoleAgent, Text: reply})

	return domain.OutboundMessage{Type: msgType, Text: reply}
}

// interpretTurn asks the model for a JSON extraction of the latest turn
// and merges it into the fragments state. Best effort: on any failure the
// state stays unchanged and the turn proceeds.
func (a *Agent) interpretTurn(ctx context.Context, turn domain.Turn) {
	log := observability.LoggerFromContext(ctx)

	raw, err := a.llm.Complete(ctx, buildInterpretationMessages(turn), domain.CompletionParams{
		Model:       a.model,
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
		JSONMode:    true,
	})
	if err != nil {
		log.Warn("interpretation call failed, skipping merge", "error", err)
		return
	}

	fragments, err := mergeExtraction(log, a.state, raw)
	if err != nil {
		log.Warn("interpretation result unusable, skipping merge", "error", err)
		return
	}

	a.fragments = append(a.fragments, fragments...)
	log.Info("merged extraction", "new_fragments", len(fragments))
}

// generateReply asks the model for the next conversational utterance. A
// failed call degrades to the fixed fallback; only a transport failure,
// which leaves no generated text at all, surfaces as an error-tagged
// message.
func (a *Agent) generateReply(ctx context.Context) (string, domain.MessageType) {
	log := observability.LoggerFromContext(ctx)

	reply, err := a.llm.Complete(ctx, buildResponseMessages(a.history), domain.CompletionParams{
		Model:       a.model,
		Temperature: a.temperature,
		MaxTokens:   a.maxTokens,
	})
	if err == nil {
		return reply, domain.MessageInfoUpdate
	}

	log.Error("response generation failed, using fallback", "error", err)

	var transportErr *domain.TransportError
	if errors.As(err, &transportErr) {
		return fallbackUtterance, domain.MessageError
	}
	return fallbackUtterance, domain.MessageInfoUpdate
}

// SynthesizeBrief projects the accumulated fragments state into an
// immutable ProjectBrief. Pure read: it may be called at any point, any
// number of times, and returns a structurally fresh document each time.
func (a *Agent) SynthesizeBrief() *domain.ProjectBrief {
	s := a.state
	return &domain.ProjectBrief{
		ProjectName:               s.ProjectName,
		HighLevelSummary:          s.HighLevelSummary,
		TargetAudience:            s.TargetAudience,
		Features:                  append([]domain.Feature(nil), s.Features...),
		DataModelsOverview:        append([]domain.DataModelElement(nil), s.DataModelsOverview...),
		NonFunctionalRequirements: append([]domain.NonFunctionalRequirement(nil), s.NonFunctionalRequirements...),
		UIUXConsiderations:        append([]domain.UIUXConsideration(nil), s.UIUXConsiderations...),
		RawUserInputLog:           append([]domain.Turn(nil), s.RawUserInputLog...),
		GenerationTimestamp:       a.now().UTC(),
	}
}

// Present forwards a synthesized brief to the knowledge base. Returns
// whether the store accepted it; storage problems are never thrown.
func (a *Agent) Present(ctx context.Context, brief *domain.ProjectBrief) bool {
	log := observability.LoggerFromContext(ctx)

	if a.store == nil {
		log.Warn("cannot store brief", "error", domain.ErrNoBriefStore)
		return false
	}

	id := DocumentID(brief)
	if err := a.store.StoreBrief(ctx, id, brief); err != nil {
		log.Error("failed to store brief", "document_id", id, "error", err)
		return false
	}

	log.Info("brief stored", "document_id", id)
	return true
}

// Fragments returns a copy of the flat requirement-fragment audit log.
func (a *Agent) Fragments() []domain.RequirementFragment {
	return append([]domain.RequirementFragment(nil), a.fragments...)
}

// DocumentID derives the knowledge-base document id for a brief from its
// project name and generation timestamp.
func DocumentID(brief *domain.ProjectBrief) domain.BriefDocumentID {
	name := strings.ReplaceAll(brief.ProjectName, " ", "_")
	return domain.BriefDocumentID(
		"project_brief_" + name + "_" + brief.GenerationTimestamp.Format(time.RFC3339),
	)
}
