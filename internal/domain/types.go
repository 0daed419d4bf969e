package domain

import "time"

type SessionID string
type BriefDocumentID string

type Role string

const (
	RoleSystem Role = "system"
	RoleUser   Role = "user"
	RoleAgent  Role = "agent"
)

// MessageType tags every OutboundMessage the agent hands back to its caller.
type MessageType string

const (
	MessageGreeting      MessageType = "greeting"
	MessageInfoUpdate    MessageType = "info_update"
	MessageClarification MessageType = "clarification_question"
	MessageBriefSummary  MessageType = "brief_summary"
	MessageError         MessageType = "error"
)

// AttachmentKind enumerates the supported non-text turn contents.
type AttachmentKind string

const (
	AttachmentImageURL    AttachmentKind = "image_url"
	AttachmentImageInline AttachmentKind = "image_base64"
	AttachmentDocumentURL AttachmentKind = "document_url"
)

// RequirementCategory classifies extracted requirement fragments.
// The four list categories match the brief's top-level JSON keys.
type RequirementCategory string

const (
	CategoryFeature       RequirementCategory = "features"
	CategoryDataModel     RequirementCategory = "data_models_overview"
	CategoryNonFunctional RequirementCategory = "non_functional_requirements"
	CategoryUIUX          RequirementCategory = "ui_ux_considerations"
	CategoryOther         RequirementCategory = "other"
)

type Timestamp = time.Time
