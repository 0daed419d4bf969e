package briefing

import (
	"fmt"
	"strings"

	"github.com/PabloGalante/uiba-agent/internal/domain"
)

const interpretationSystemPrompt = "You are an expert requirements gathering assistant for SaaS applications. " +
	"Your goal is to extract structured information from the user's input. " +
	"The user is describing a SaaS application they want to build. " +
	"Focus on identifying: project name, high-level summary, target audience, " +
	"specific features (with name, description, user_stories, acceptance_criteria), " +
	"data model ideas (name, attributes, relationships), " +
	"non-functional requirements (category, requirement, metric), " +
	"and UI/UX considerations (element_description, notes, multimodal_references). " +
	"If the user provides unclear information, formulate clarifying questions. " +
	"Always respond in JSON format with keys corresponding to these categories. " +
	"For example: {\"project_name\": \"New App\", \"features\": [{\"name\": \"Login\", ...}]}"

const responseSystemPrompt = "You are a helpful and friendly assistant helping a user define a SaaS application. " +
	"Based on the current conversation history and the information gathered so far for the project brief, " +
	"decide on the best next response. This could be: " +
	"1. Asking a clarifying question about a recently mentioned topic. " +
	"2. Confirming understanding of a feature. " +
	"3. Prompting the user for more details on a specific area (e.g., 'Tell me more about the data you need to store.'). " +
	"4. Summarizing what has been gathered so far if it seems like a good point to do so. " +
	"Keep your responses concise and focused on moving the requirements gathering forward."

const responseDirective = "What should I say next to the user?"

// responseHistoryWindow bounds how many dialogue entries the response
// prompt carries. Older entries are dropped, not summarized.
const responseHistoryWindow = 5

// buildInterpretationMessages builds the prompt that asks the model to
// extract structured requirements from the latest turn. Extraction is
// evaluated on the turn in isolation; prior dialogue is deliberately not
// included, so the model never re-extracts stale facts.
func buildInterpretationMessages(turn domain.Turn) []domain.ChatMessage {
	var content strings.Builder
	content.WriteString(turn.Text)

	if len(turn.Attachments) > 0 {
		content.WriteString("\n[User provided multimodal content: ")
		for _, att := range turn.Attachments {
			desc := att.Description
			if desc == "" {
				desc = "no description"
			}
			fmt.Fprintf(&content, "%s - %s; ", att.Kind, desc)
		}
		content.WriteString("]")
	}

	return []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: interpretationSystemPrompt},
		{Role: domain.RoleUser, Content: "Here's the latest input from the user: " + content.String()},
	}
}

// buildResponseMessages builds the prompt that asks the model for the
// next conversational utterance, carrying the most recent window of
// dialogue for context.
func buildResponseMessages(history []domain.DialogueEntry) []domain.ChatMessage {
	messages := []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: responseSystemPrompt},
	}

	window := history
	if len(window) > responseHistoryWindow {
		window = window[len(window)-responseHistoryWindow:]
	}
	for _, entry := range window {
		messages = append(messages, domain.ChatMessage{
			Role:    entry.Role,
			Content: entry.Text,
		})
	}

	return append(messages, domain.ChatMessage{
		Role:    domain.RoleUser,
		Content: responseDirective,
	})
}
