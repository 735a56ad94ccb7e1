package blueprints

import (
	"stackfast/internal/blueprints/engine"
	"stackfast/internal/blueprints/enhance"
	"stackfast/internal/catalog"
)

// Modes reported on every blueprint.
const (
	ModeAI        = "ai"
	ModeRuleBased = "rule-based"
)

// BlueprintRequest is the POST body of both blueprint routes.
type BlueprintRequest struct {
	ProjectIdea      string              `json:"projectIdea"`
	SkillProfile     engine.SkillProfile `json:"skillProfile"`
	PreferredToolIDs []string            `json:"preferredToolIds"`
}

// Input converts the request into engine input.
func (r BlueprintRequest) Input() engine.Input {
	return engine.Input{
		ProjectIdea:      r.ProjectIdea,
		SkillProfile:     r.SkillProfile,
		PreferredToolIDs: r.PreferredToolIDs,
	}
}

// Blueprint is the rule-based response.
type Blueprint struct {
	BlueprintID string `json:"blueprintId"`
	Mode        string `json:"mode"`
	engine.Recommendation
}

// EnhancedBlueprint is the response of the enhanced route. When the provider path
// fails it carries a rule-based recommendation and no AI fields.
type EnhancedBlueprint struct {
	BlueprintID string `json:"blueprintId"`
	Mode        string `json:"mode"`
	engine.Recommendation
	AIAnalysis *enhance.AIAnalysis    `json:"aiAnalysis,omitempty"`
	Roadmap    []enhance.RoadmapPhase `json:"roadmap,omitempty"`
	Confidence *float64               `json:"confidence,omitempty"`
}

// ToolListResponse is the body of GET /tools.
type ToolListResponse struct {
	Items      []catalog.ToolProfile `json:"items"`
	Categories []string              `json:"categories"`
	Total      int                   `json:"total"`
}
