package catalog

import (
	"fmt"
	"strings"
)

// Pricing models declared by catalog entries.
const (
	PricingFree       = "free"
	PricingFreemium   = "freemium"
	PricingPaid       = "paid"
	PricingUsageBased = "usage-based"
)

// Community sentiment values.
const (
	SentimentHighlyPositive = "highly_positive"
	SentimentPositive       = "positive"
	SentimentNeutral        = "neutral"
	SentimentNegative       = "negative"
)

// RuleKindCategory marks a rule whose targets are tool categories.
const RuleKindCategory = "category"

// Skills captures the effort a tool demands, each on a 1-5 scale.
type Skills struct {
	Setup int `json:"setup"`
	Daily int `json:"daily"`
}

// Rule is a conflict directive declared by a catalog entry.
type Rule struct {
	Kind    string   `json:"kind"`
	Targets []string `json:"targets"`
	Reason  string   `json:"reason,omitempty"`
}

// ToolProfile is a single catalog entry.
type ToolProfile struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Category           string    `json:"category"`
	Skills             Skills    `json:"skills"`
	PricingModel       string    `json:"pricing_model"`
	BaselineCost       float64   `json:"baseline_cost"`
	CompatibleWith     []string  `json:"compatible_with,omitempty"`
	PopularityScore    float64   `json:"popularity_score"`
	CommunitySentiment string    `json:"community_sentiment"`
	CostModel          CostModel `json:"-"`
	Rules              []Rule    `json:"rules,omitempty"`
}

// DisplayName returns the tool name, falling back to its id.
func (t ToolProfile) DisplayName() string {
	if name := strings.TrimSpace(t.Name); name != "" {
		return name
	}
	return t.ID
}

// NormalizedPricing maps aliases such as "free-tier" onto the canonical pricing models.
func (t ToolProfile) NormalizedPricing() string {
	return NormalizePricing(t.PricingModel)
}

// NormalizePricing returns the canonical pricing model for raw.
func NormalizePricing(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "free", "open-source", "oss":
		return PricingFree
	case "freemium", "free-tier", "free_tier":
		return PricingFreemium
	case "usage-based", "usage_based", "pay-as-you-go":
		return PricingUsageBased
	case "paid", "subscription":
		return PricingPaid
	default:
		return strings.ToLower(strings.TrimSpace(raw))
	}
}

// HasFreeOption reports whether the tool can be used without paying.
func (t ToolProfile) HasFreeOption() bool {
	switch t.NormalizedPricing() {
	case PricingFree, PricingFreemium:
		return true
	}
	switch m := t.CostModel.(type) {
	case FreeCost:
		return true
	case SubscriptionCost:
		return m.HasFreeTier
	case PayAsYouGoCost:
		return m.HasFreeTier
	}
	return false
}

// ConflictTargets returns the categories this tool declares itself incompatible with.
func (t ToolProfile) ConflictTargets() []Rule {
	out := make([]Rule, 0, len(t.Rules))
	for _, r := range t.Rules {
		if strings.EqualFold(strings.TrimSpace(r.Kind), RuleKindCategory) && len(r.Targets) > 0 {
			out = append(out, r)
		}
	}
	return out
}

// Validate checks the invariants the engine relies on.
func (t ToolProfile) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("tool id is required")
	}
	if strings.TrimSpace(t.Category) == "" {
		return fmt.Errorf("tool %s: category is required", t.ID)
	}
	if t.Skills.Setup < 1 || t.Skills.Setup > 5 {
		return fmt.Errorf("tool %s: skills.setup must be 1-5, got %d", t.ID, t.Skills.Setup)
	}
	if t.Skills.Daily < 1 || t.Skills.Daily > 5 {
		return fmt.Errorf("tool %s: skills.daily must be 1-5, got %d", t.ID, t.Skills.Daily)
	}
	if t.PopularityScore < 0 || t.PopularityScore > 1 {
		return fmt.Errorf("tool %s: popularity_score must be 0-1, got %v", t.ID, t.PopularityScore)
	}
	if t.BaselineCost < 0 {
		return fmt.Errorf("tool %s: baseline_cost must be >= 0", t.ID)
	}
	return nil
}

// Normalize fills derived fields: it trims identifiers and derives a cost model when absent.
func (t *ToolProfile) Normalize() {
	t.ID = strings.TrimSpace(t.ID)
	t.Category = strings.TrimSpace(t.Category)
	t.CommunitySentiment = strings.ToLower(strings.TrimSpace(t.CommunitySentiment))
	if t.CostModel == nil {
		t.CostModel = DeriveCostModel(t.PricingModel, t.BaselineCost)
	}
}
