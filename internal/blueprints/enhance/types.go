package enhance

import "stackfast/internal/blueprints/engine"

// ProjectContext is the provider's structured reading of the project idea.
type ProjectContext struct {
	ProjectType         string   `json:"projectType"`
	Complexity          string   `json:"complexity"`
	Features            []string `json:"features"`
	ScalingRequirements string   `json:"scalingRequirements"`
	RealTimeNeeds       *bool    `json:"realTimeNeeds,omitempty"`
	AuthNeeds           *bool    `json:"authNeeds,omitempty"`
	AIMLNeeds           *bool    `json:"aiMlNeeds,omitempty"`
	DatabaseNeeds       string   `json:"databaseNeeds"`
}

// AIToolPick is one tool suggested by the provider.
type AIToolPick struct {
	ToolID       string   `json:"toolId"`
	Priority     int      `json:"priority"`
	Reason       string   `json:"reason"`
	Alternatives []string `json:"alternatives"`
}

// RoadmapPhase is one step of the implementation plan.
type RoadmapPhase struct {
	Phase    string   `json:"phase"`
	Duration string   `json:"duration"`
	Tasks    []string `json:"tasks"`
}

// AIRecommendation is the provider's recommendation payload.
type AIRecommendation struct {
	RecommendedTools []AIToolPick   `json:"recommendedTools"`
	Roadmap          []RoadmapPhase `json:"roadmap"`
	Reasoning        string         `json:"reasoning"`
	Risks            []string       `json:"risks"`
	LearningPath     []string       `json:"learningPath"`
}

// AIAnalysis is the validated provider output attached to an enhanced result.
type AIAnalysis struct {
	ProjectContext engine.ProjectProfile `json:"projectContext"`
	// ContextSource is "ai" when the provider's context parsed, otherwise "local".
	ContextSource       string              `json:"contextSource"`
	ContextCompleteness float64             `json:"contextCompleteness"`
	Reasoning           string              `json:"reasoning"`
	Risks               []string            `json:"risks"`
	LearningPath        []string            `json:"learningPath"`
	Alternatives        map[string][]string `json:"alternatives"`
	DroppedToolIDs      []string            `json:"droppedToolIds,omitempty"`
}

// EnhancedRecommendation is a recommendation built with provider assistance.
type EnhancedRecommendation struct {
	engine.Recommendation
	AIAnalysis AIAnalysis     `json:"aiAnalysis"`
	Roadmap    []RoadmapPhase `json:"roadmap"`
	Confidence float64        `json:"confidence"`
}
