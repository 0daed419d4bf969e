package domain

import "time"

// Feature describes one capability of the target application.
type Feature struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	UserStories        []string `json:"user_stories"`
	AcceptanceCriteria []string `json:"acceptance_criteria"`
}

// DataModelElement describes one entity of the target application's data model.
type DataModelElement struct {
	Name          string            `json:"name"`
	Attributes    map[string]string `json:"attributes"`
	Relationships []string          `json:"relationships,omitempty"`
}

// NonFunctionalRequirement captures a quality attribute such as
// performance, security or scalability.
type NonFunctionalRequirement struct {
	Category    string `json:"category"`
	Requirement string `json:"requirement"`
	Metric      string `json:"metric,omitempty"`
}

// UIUXConsideration captures notes about a screen or interface element,
// optionally referencing attachments the user provided (e.g. sketches).
type UIUXConsideration struct {
	ElementDescription   string   `json:"element_description"`
	Notes                []string `json:"notes"`
	MultimodalReferences []string `json:"multimodal_references,omitempty"`
}

// RequirementFragment is one audit-trail record of a piece of structured
// information extracted from a turn. The fragment log is a flat superset
// of whatever lands in the brief's typed sections and is never
// deduplicated or validated against them.
type RequirementFragment struct {
	Category     RequirementCategory `json:"category"`
	Description  string              `json:"description"`
	Priority     int                 `json:"priority,omitempty"`
	SourceTurnID string              `json:"source_turn_id,omitempty"`
}

// ProjectBrief is the finalized requirements document handed to the
// downstream consumer. Immutable once produced by synthesis.
type ProjectBrief struct {
	ProjectName      string `json:"project_name"`
	HighLevelSummary string `json:"high_level_summary"`
	TargetAudience   string `json:"target_audience,omitempty"`

	Features                  []Feature                  `json:"features"`
	DataModelsOverview        []DataModelElement         `json:"data_models_overview"`
	NonFunctionalRequirements []NonFunctionalRequirement `json:"non_functional_requirements"`
	UIUXConsiderations        []UIUXConsideration        `json:"ui_ux_considerations"`

	// RawUserInputLog keeps every accepted turn for traceability.
	RawUserInputLog []Turn `json:"raw_user_input_log"`

	GenerationTimestamp time.Time `json:"generation_timestamp"`
}

// DefaultProjectName is used until the user names the project.
const DefaultProjectName = "Untitled SaaS Project"
