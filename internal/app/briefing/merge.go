package briefing

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/PabloGalante/uiba-agent/internal/domain"
)

// ErrExtractionParse signals that the interpretation result returned by
// the model was not a valid JSON object.
var ErrExtractionParse = errors.New("briefing: extraction result is not valid JSON")

// mergeExtraction folds one interpretation result into the fragments
// state. Scalar fields follow last-non-empty-wins; list elements that are
// well-formed mappings are appended (never deduplicated), everything else
// is skipped with a warning. Unknown top-level keys are ignored. Every
// appended element is also returned as a RequirementFragment audit record.
func mergeExtraction(log *slog.Logger, state *FragmentsState, raw string) ([]domain.RequirementFragment, error) {
	var extracted map[string]any
	if err := json.Unmarshal([]byte(raw), &extracted); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExtractionParse, err)
	}

	if v := getString(extracted, "project_name"); v != "" {
		state.ProjectName = v
	}
	if v := getString(extracted, "high_level_summary"); v != "" {
		state.HighLevelSummary = v
	}
	if v := getString(extracted, "target_audience"); v != "" {
		state.TargetAudience = v
	}

	var fragments []domain.RequirementFragment
	record := func(category domain.RequirementCategory, item map[string]any) {
		fragments = append(fragments, domain.RequirementFragment{
			Category:    category,
			Description: fmt.Sprintf("%v", item),
		})
	}

	for _, item := range wellFormedItems(log, extracted, domain.CategoryFeature) {
		state.Features = append(state.Features, decodeFeature(item))
		record(domain.CategoryFeature, item)
	}
	for _, item := range wellFormedItems(log, extracted, domain.CategoryDataModel) {
		state.DataModelsOverview = append(state.DataModelsOverview, decodeDataModelElement(item))
		record(domain.CategoryDataModel, item)
	}
	for _, item := range wellFormedItems(log, extracted, domain.CategoryNonFunctional) {
		state.NonFunctionalRequirements = append(state.NonFunctionalRequirements, decodeNonFunctionalRequirement(item))
		record(domain.CategoryNonFunctional, item)
	}
	for _, item := range wellFormedItems(log, extracted, domain.CategoryUIUX) {
		state.UIUXConsiderations = append(state.UIUXConsiderations, decodeUIUXConsideration(item))
		record(domain.CategoryUIUX, item)
	}

	return fragments, nil
}

// wellFormedItems pulls the list stored under the category key and keeps
// only elements that are mappings. Anything else is a recoverable
// warning, not a failure.
func wellFormedItems(log *slog.Logger, extracted map[string]any, category domain.RequirementCategory) []map[string]any {
	rawList, ok := extracted[string(category)].([]any)
	if !ok {
		return nil
	}

	var items []map[string]any
	for _, v := range rawList {
		item, ok := v.(map[string]any)
		if !ok {
			log.Warn("skipping malformed extraction element",
				"category", string(category),
				"element", fmt.Sprintf("%v", v))
			continue
		}
		items = append(items, item)
	}
	return items
}

// ─────────────────────────────────────────────
// Total projections: map → typed entity
// ─────────────────────────────────────────────

func decodeFeature(m map[string]any) domain.Feature {
	f := domain.Feature{
		ID:                 getString(m, "id"),
		Name:               getString(m, "name"),
		Description:        getString(m, "description"),
		UserStories:        getStringList(m, "user_stories"),
		AcceptanceCriteria: getStringList(m, "acceptance_criteria"),
	}
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return f
}

func decodeDataModelElement(m map[string]any) domain.DataModelElement {
	return domain.DataModelElement{
		Name:          getString(m, "name"),
		Attributes:    getAttributeMap(m, "attributes"),
		Relationships: getStringList(m, "relationships"),
	}
}

func decodeNonFunctionalRequirement(m map[string]any) domain.NonFunctionalRequirement {
	return domain.NonFunctionalRequirement{
		Category:    getString(m, "category"),
		Requirement: getString(m, "requirement"),
		Metric:      getString(m, "metric"),
	}
}

func decodeUIUXConsideration(m map[string]any) domain.UIUXConsideration {
	return domain.UIUXConsideration{
		ElementDescription:   getString(m, "element_description"),
		Notes:                getStringList(m, "notes"),
		MultimodalReferences: getStringList(m, "multimodal_references"),
	}
}

// ─────────────────────────────────────────────
// Permissive decode helpers
// ─────────────────────────────────────────────

func getString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func getStringList(m map[string]any, key string) []string {
	if m == nil {
		return nil
	}
	list, ok := m[key].([]any)
	if !ok {
		return nil
	}

	var out []string
	for _, v := range list {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// getAttributeMap reads a {"name": "type"} mapping. Non-string values are
// stringified rather than dropped so the projection stays total.
func getAttributeMap(m map[string]any, key string) map[string]string {
	if m == nil {
		return nil
	}
	raw, ok := m[key].(map[string]any)
	if !ok {
		return nil
	}

	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if s, ok := v.(string); ok {
			out[k] = s
		} else {
			out[k] = fmt.Sprintf("%v", v)
		}
	}
	return out
}
