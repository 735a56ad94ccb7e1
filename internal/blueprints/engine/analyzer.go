package engine

import (
	"strings"
	"unicode"
)

type keywordSet struct {
	name     string
	keywords []string
}

var complexityIndicators = []keywordSet{
	{name: "real-time", keywords: []string{"real-time", "realtime"}},
	{name: "ai", keywords: []string{"ai"}},
	{name: "ml", keywords: []string{"ml", "machine learning"}},
	{name: "analytics", keywords: []string{"analytics"}},
	{name: "payment", keywords: []string{"payment"}},
	{name: "multi-tenant", keywords: []string{"multi-tenant", "multitenant"}},
	{name: "microservices", keywords: []string{"microservice"}},
	{name: "scale", keywords: []string{"scale", "scalab"}},
	{name: "enterprise", keywords: []string{"enterprise"}},
	{name: "distributed", keywords: []string{"distributed"}},
}

var featureKeywords = []keywordSet{
	{name: FeatureAuthentication, keywords: []string{"auth", "login", "sign up", "signup", "sign-in", "user account"}},
	{name: FeatureRealTime, keywords: []string{"real-time", "realtime", "websocket", "chat", "live update"}},
	{name: FeatureAIML, keywords: []string{"ai", "ml", "llm", "gpt", "machine learning", "artificial intelligence"}},
	{name: FeaturePayments, keywords: []string{"payment", "checkout", "billing", "subscription", "stripe"}},
	{name: FeatureSearch, keywords: []string{"search", "full-text", "semantic"}},
}

// DefaultProjectProfile is the profile of an empty idea.
func DefaultProjectProfile() ProjectProfile {
	return ProjectProfile{
		ProjectType:         ProjectWebApp,
		Complexity:          ComplexitySimple,
		Features:            []string{},
		ScalingRequirements: TierLow,
		DatabaseNeeds:       DatabaseRelational,
	}
}

// Analyze derives a project profile from a free-text idea using keyword heuristics.
func Analyze(projectIdea string) ProjectProfile {
	text := strings.ToLower(strings.TrimSpace(projectIdea))
	if text == "" {
		return DefaultProjectProfile()
	}
	words := wordSet(text)

	profile := ProjectProfile{
		ProjectType: classifyProjectType(text, words),
		Complexity:  classifyComplexity(CountComplexityIndicators(text)),
		Features:    make([]string, 0, len(featureKeywords)),
	}
	for _, set := range featureKeywords {
		if matchesAny(text, words, set.keywords) {
			profile.Features = append(profile.Features, set.name)
		}
	}
	profile.AuthNeeds = profile.HasFeature(FeatureAuthentication)
	profile.RealTimeNeeds = profile.HasFeature(FeatureRealTime)
	profile.AIMLNeeds = profile.HasFeature(FeatureAIML)
	profile.ScalingRequirements = ScalingFor(profile.Complexity)
	profile.DatabaseNeeds = databaseNeedsFor(profile)
	return profile
}

// CountComplexityIndicators returns how many distinct indicators occur in text.
func CountComplexityIndicators(text string) int {
	text = strings.ToLower(text)
	words := wordSet(text)
	count := 0
	for _, set := range complexityIndicators {
		if matchesAny(text, words, set.keywords) {
			count++
		}
	}
	return count
}

// ScalingFor maps a complexity level onto its scaling requirement.
func ScalingFor(complexity string) string {
	switch complexity {
	case ComplexityComplex:
		return TierHigh
	case ComplexityMedium:
		return TierMedium
	default:
		return TierLow
	}
}

var (
	mobileKeywords    = []string{"mobile", "app"}
	apiKeywords       = []string{"api", "backend"}
	dashboardKeywords = []string{"dashboard", "admin"}
)

func classifyProjectType(text string, words map[string]bool) string {
	switch {
	case matchesAny(text, words, mobileKeywords):
		return ProjectMobileApp
	case matchesAny(text, words, apiKeywords):
		return ProjectAPI
	case matchesAny(text, words, dashboardKeywords):
		return ProjectDashboard
	default:
		return ProjectWebApp
	}
}

func classifyComplexity(indicators int) string {
	switch {
	case indicators > 3:
		return ComplexityComplex
	case indicators > 1:
		return ComplexityMedium
	default:
		return ComplexitySimple
	}
}

func databaseNeedsFor(p ProjectProfile) string {
	switch {
	case p.HasFeature(FeatureSearch):
		return DatabaseVector
	case p.AIMLNeeds:
		return DatabaseNoSQL
	default:
		return DatabaseRelational
	}
}

// matchesAny matches short keywords (three letters or fewer) as whole words and
// longer ones as substrings, so "ai" does not fire on "email".
func matchesAny(text string, words map[string]bool, keywords []string) bool {
	for _, kw := range keywords {
		if len(kw) <= 3 {
			if words[kw] {
				return true
			}
			continue
		}
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func wordSet(text string) map[string]bool {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	out := make(map[string]bool, len(fields))
	for _, f := range fields {
		out[f] = true
	}
	return out
}
