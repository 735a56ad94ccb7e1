package engine

import (
	"fmt"
	"strings"
)

// Project types.
const (
	ProjectWebApp    = "web-app"
	ProjectMobileApp = "mobile-app"
	ProjectAPI       = "api"
	ProjectDashboard = "dashboard"
)

// Complexity levels.
const (
	ComplexitySimple  = "simple"
	ComplexityMedium  = "medium"
	ComplexityComplex = "complex"
)

// Scaling and traffic tiers.
const (
	TierLow    = "low"
	TierMedium = "medium"
	TierHigh   = "high"
)

// Database needs.
const (
	DatabaseSimple     = "simple"
	DatabaseRelational = "relational"
	DatabaseNoSQL      = "nosql"
	DatabaseVector     = "vector"
)

// Features detected in a project idea.
const (
	FeatureAuthentication = "authentication"
	FeatureRealTime       = "real-time"
	FeatureAIML           = "ai-ml"
	FeaturePayments       = "payments"
	FeatureSearch         = "search"
)

// Development phases.
const (
	PhasePrototype  = "prototype"
	PhaseMVP        = "mvp"
	PhaseProduction = "production"
)

// Warning types.
const (
	WarningToolConflict       = "Tool Conflict"
	WarningPreferenceNotFound = "Preference Not Found"
	WarningPreferenceConflict = "Preference Conflict"
)

// Cost projection confidence levels.
const (
	ConfidenceLow    = "low"
	ConfidenceMedium = "medium"
	ConfidenceHigh   = "high"
)

// ReasonUserPreference is the reason attached to tools the caller asked for.
const ReasonUserPreference = "User preference"

// MaxPreferredTools bounds preferredToolIds on a single request.
const MaxPreferredTools = 10

// ProjectProfile is the structured view of a project idea.
type ProjectProfile struct {
	ProjectType         string   `json:"projectType"`
	Complexity          string   `json:"complexity"`
	Features            []string `json:"features"`
	ScalingRequirements string   `json:"scalingRequirements"`
	RealTimeNeeds       bool     `json:"realTimeNeeds"`
	AuthNeeds           bool     `json:"authNeeds"`
	AIMLNeeds           bool     `json:"aiMlNeeds"`
	DatabaseNeeds       string   `json:"databaseNeeds"`
}

// HasFeature reports whether feature was detected.
func (p ProjectProfile) HasFeature(feature string) bool {
	for _, f := range p.Features {
		if f == feature {
			return true
		}
	}
	return false
}

// SkillProfile is the caller's tolerance for setup and daily effort, each 1-5.
type SkillProfile struct {
	Setup int `json:"setup"`
	Daily int `json:"daily"`
}

// Beginner reports whether both tolerances are at most 2.
func (s SkillProfile) Beginner() bool {
	return s.Setup <= 2 && s.Daily <= 2
}

// Input is a single recommendation request.
type Input struct {
	ProjectIdea      string       `json:"projectIdea"`
	SkillProfile     SkillProfile `json:"skillProfile"`
	PreferredToolIDs []string     `json:"preferredToolIds"`
}

// FieldError describes one invalid input field.
type FieldError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

// Validate returns the list of invalid fields, or nil when the input is usable.
func (in Input) Validate() []FieldError {
	var out []FieldError
	if strings.TrimSpace(in.ProjectIdea) == "" {
		out = append(out, FieldError{Field: "projectIdea", Issue: "required"})
	}
	if in.SkillProfile.Setup < 1 || in.SkillProfile.Setup > 5 {
		out = append(out, FieldError{Field: "skillProfile.setup", Issue: "must be between 1 and 5"})
	}
	if in.SkillProfile.Daily < 1 || in.SkillProfile.Daily > 5 {
		out = append(out, FieldError{Field: "skillProfile.daily", Issue: "must be between 1 and 5"})
	}
	if len(in.PreferredToolIDs) > MaxPreferredTools {
		out = append(out, FieldError{Field: "preferredToolIds", Issue: fmt.Sprintf("at most %d ids", MaxPreferredTools)})
	}
	for i, id := range in.PreferredToolIDs {
		if strings.TrimSpace(id) == "" {
			out = append(out, FieldError{Field: fmt.Sprintf("preferredToolIds[%d]", i), Issue: "must not be empty"})
		}
	}
	return out
}

// StackEntry is one selected tool.
type StackEntry struct {
	ToolID             string  `json:"toolId"`
	Name               string  `json:"name"`
	Category           string  `json:"category"`
	Reason             string  `json:"reason"`
	CompatibilityScore float64 `json:"compatibilityScore"`
}

// Warning is a non-fatal notice attached to a recommendation.
type Warning struct {
	Type    string `json:"type"`
	Message string `json:"message"`
	ToolID  string `json:"toolId,omitempty"`
}

// CostBreakdown is the monthly cost band of one stack entry.
type CostBreakdown struct {
	ToolID          string  `json:"toolId"`
	ToolName        string  `json:"toolName"`
	CostType        string  `json:"costType"`
	MonthlyMin      float64 `json:"monthlyMin"`
	MonthlyMax      float64 `json:"monthlyMax"`
	MonthlyEstimate float64 `json:"monthlyEstimate"`
	Notes           string  `json:"notes"`
}

// CostProjection is the monthly cost band of a stack.
type CostProjection struct {
	TotalMonthlyMin      float64         `json:"totalMonthlyMin"`
	TotalMonthlyMax      float64         `json:"totalMonthlyMax"`
	TotalMonthlyEstimate float64         `json:"totalMonthlyEstimate"`
	Breakdown            []CostBreakdown `json:"breakdown"`
	Confidence           string          `json:"confidence"`
	ScalingFactor        float64         `json:"scalingFactor"`
}

// ProjectScale drives cost projection.
type ProjectScale struct {
	Complexity    string `json:"complexity"`
	ExpectedUsers int    `json:"expectedUsers"`
	Traffic       string `json:"traffic"`
	Phase         string `json:"phase"`
}

// Recommendation is the rule-based result.
type Recommendation struct {
	Summary          string         `json:"summary"`
	RecommendedStack []StackEntry   `json:"recommendedStack"`
	Warnings         []Warning      `json:"warnings"`
	CostProjection   CostProjection `json:"costProjection"`
	ProjectProfile   ProjectProfile `json:"projectProfile"`
	ProjectScale     ProjectScale   `json:"projectScale"`
}

// Options tunes stack selection.
type Options struct {
	MaxStackSize int
	// AcceptanceThreshold is the minimum score for non-preferred tools. Zero accepts every tool.
	AcceptanceThreshold float64
}

// Default selection limits.
const (
	DefaultMaxStackSize        = 6
	DefaultAcceptanceThreshold = 40
)

// DefaultOptions returns the standard selection limits.
func DefaultOptions() Options {
	return Options{MaxStackSize: DefaultMaxStackSize, AcceptanceThreshold: DefaultAcceptanceThreshold}
}

func (o Options) normalized() Options {
	if o.MaxStackSize <= 0 {
		o.MaxStackSize = DefaultMaxStackSize
	}
	if o.AcceptanceThreshold < 0 {
		o.AcceptanceThreshold = 0
	}
	return o
}
