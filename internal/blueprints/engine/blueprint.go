package engine

import (
	"fmt"
	"strings"

	"stackfast/internal/catalog"
)

// GenerateBlueprint runs the rule-based pipeline over a catalog snapshot. It is pure:
// the same input and catalog always produce the same recommendation.
func GenerateBlueprint(input Input, tools []catalog.ToolProfile, opts Options) Recommendation {
	profile := Analyze(input.ProjectIdea)
	candidates := RankCandidates(tools, profile, input.SkillProfile)
	selected, warnings := SelectStack(candidates, input.PreferredToolIDs, opts)
	scale := DeriveScale(input.ProjectIdea, profile, input.SkillProfile)
	return Assemble(profile, scale, selected, warnings)
}

// Assemble builds a recommendation from an already selected stack.
func Assemble(profile ProjectProfile, scale ProjectScale, selected []Candidate, warnings []Warning) Recommendation {
	if warnings == nil {
		warnings = []Warning{}
	}
	costs := ProjectCosts(StackTools(selected), scale)
	return Recommendation{
		Summary:          summarize(profile, selected, costs),
		RecommendedStack: StackEntries(selected),
		Warnings:         warnings,
		CostProjection:   costs,
		ProjectProfile:   profile,
		ProjectScale:     scale,
	}
}

func summarize(profile ProjectProfile, selected []Candidate, costs CostProjection) string {
	if len(selected) == 0 {
		return fmt.Sprintf("No tools in the catalog met the bar for a %s %s project.", profile.Complexity, profile.ProjectType)
	}
	names := make([]string, 0, len(selected))
	for _, c := range selected {
		names = append(names, c.Tool.DisplayName())
	}
	return fmt.Sprintf("Recommended %d-tool stack for a %s %s project: %s. Estimated $%.2f/month (range $%.2f to $%.2f, %s confidence).",
		len(selected), profile.Complexity, profile.ProjectType, strings.Join(names, ", "),
		costs.TotalMonthlyEstimate, costs.TotalMonthlyMin, costs.TotalMonthlyMax, costs.Confidence)
}
