package briefing

import "github.com/PabloGalante/uiba-agent/internal/domain"

// FragmentsState is the mutable working representation of the brief,
// owned exclusively by one Agent instance. Scalar fields follow
// last-non-empty-wins; the typed lists and the raw turn log only grow
// during a session. Nothing is removed or mutated in place; the only
// way back to the empty form is StartInteraction.
type FragmentsState struct {
	ProjectName      string
	HighLevelSummary string
	TargetAudience   string

	Features                  []domain.Feature
	DataModelsOverview        []domain.DataModelElement
	NonFunctionalRequirements []domain.NonFunctionalRequirement
	UIUXConsiderations        []domain.UIUXConsideration

	RawUserInputLog []domain.Turn
}

func newFragmentsState() *FragmentsState {
	return &FragmentsState{
		ProjectName: domain.DefaultProjectName,
	}
}
