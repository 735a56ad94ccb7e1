package enhance

import (
	"encoding/json"
	"fmt"
	"strings"

	"stackfast/internal/blueprints/engine"
)

const contextFieldCount = 8

var (
	validProjectTypes = setOf(engine.ProjectWebApp, engine.ProjectMobileApp, engine.ProjectAPI, engine.ProjectDashboard)
	validComplexity   = setOf(engine.ComplexitySimple, engine.ComplexityMedium, engine.ComplexityComplex)
	validTiers        = setOf(engine.TierLow, engine.TierMedium, engine.TierHigh)
	validDatabase     = setOf(engine.DatabaseSimple, engine.DatabaseRelational, engine.DatabaseNoSQL, engine.DatabaseVector)
	validFeatures     = setOf(engine.FeatureAuthentication, engine.FeatureRealTime, engine.FeatureAIML, engine.FeaturePayments, engine.FeatureSearch)
)

// ParseProjectContext decodes the provider's context and merges it over the local
// analysis: invalid or missing fields keep the local value. It returns the merged
// profile and the share of fields the provider supplied validly.
func ParseProjectContext(raw string, local engine.ProjectProfile) (engine.ProjectProfile, float64, error) {
	var pc ProjectContext
	if err := json.Unmarshal([]byte(extractJSON(raw)), &pc); err != nil {
		return local, 0, fmt.Errorf("parse project context: %w", err)
	}

	out := local
	valid := 0
	if v := normalizeEnum(pc.ProjectType); validProjectTypes[v] {
		out.ProjectType = v
		valid++
	}
	if v := normalizeEnum(pc.Complexity); validComplexity[v] {
		out.Complexity = v
		valid++
	}
	if v := normalizeEnum(pc.ScalingRequirements); validTiers[v] {
		out.ScalingRequirements = v
		valid++
	} else {
		out.ScalingRequirements = engine.ScalingFor(out.Complexity)
	}
	if v := normalizeEnum(pc.DatabaseNeeds); validDatabase[v] {
		out.DatabaseNeeds = v
		valid++
	}
	if pc.Features != nil {
		features := make([]string, 0, len(pc.Features))
		seen := make(map[string]bool)
		for _, f := range pc.Features {
			v := normalizeEnum(f)
			if validFeatures[v] && !seen[v] {
				seen[v] = true
				features = append(features, v)
			}
		}
		out.Features = features
		valid++
	}
	if pc.RealTimeNeeds != nil {
		out.RealTimeNeeds = *pc.RealTimeNeeds
		valid++
	}
	if pc.AuthNeeds != nil {
		out.AuthNeeds = *pc.AuthNeeds
		valid++
	}
	if pc.AIMLNeeds != nil {
		out.AIMLNeeds = *pc.AIMLNeeds
		valid++
	}
	return out, float64(valid) / contextFieldCount, nil
}

// extractJSON trims markdown fences and any prose around the outermost object.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return s
}

func normalizeEnum(v string) string {
	v = strings.ToLower(strings.TrimSpace(v))
	return strings.ReplaceAll(v, "_", "-")
}

func setOf(values ...string) map[string]bool {
	out := make(map[string]bool, len(values))
	for _, v := range values {
		out[v] = true
	}
	return out
}
