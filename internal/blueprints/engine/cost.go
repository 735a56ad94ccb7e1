package engine

import (
	"fmt"

	"stackfast/internal/catalog"
)

// Custom pricing is quoted as a fixed placeholder band.
const (
	customMonthlyMax      = 5000.0
	customMonthlyEstimate = 2500.0
	usageTailMultiplier   = 3.0
	highTrafficMultiplier = 1.5
)

// ProjectCosts computes the monthly cost band of the given tools at scale. The
// breakdown has one entry per tool in the order given.
func ProjectCosts(tools []catalog.ToolProfile, scale ProjectScale) CostProjection {
	breakdown := make([]CostBreakdown, 0, len(tools))
	var sumMin, sumMax, sumEst float64
	variable := false
	for _, tool := range tools {
		model := tool.CostModel
		if model == nil {
			model = catalog.DeriveCostModel(tool.PricingModel, tool.BaselineCost)
		}
		entry := toolCost(tool, model, scale)
		breakdown = append(breakdown, entry)
		sumMin += entry.MonthlyMin
		sumMax += entry.MonthlyMax
		sumEst += entry.MonthlyEstimate
		if catalog.IsVariable(model) {
			variable = true
		}
	}

	factor := ScalingFactor(scale)
	return CostProjection{
		TotalMonthlyMin:      round2(sumMin * factor),
		TotalMonthlyMax:      round2(sumMax * factor),
		TotalMonthlyEstimate: round2(sumEst * factor),
		Breakdown:            breakdown,
		Confidence:           costConfidence(variable, scale),
		ScalingFactor:        factor,
	}
}

func toolCost(tool catalog.ToolProfile, model catalog.CostModel, scale ProjectScale) CostBreakdown {
	entry := CostBreakdown{
		ToolID:   tool.ID,
		ToolName: tool.DisplayName(),
		CostType: model.Type(),
	}
	switch m := model.(type) {
	case catalog.FreeCost:
		entry.Notes = "Free"
	case catalog.SubscriptionCost:
		base := round2(m.BaseCostMonthly)
		entry.MonthlyMin, entry.MonthlyMax, entry.MonthlyEstimate = base, base, base
		if m.HasFreeTier {
			entry.Notes = fmt.Sprintf("Free tier available; paid plan $%.2f/month", base)
		} else {
			entry.Notes = fmt.Sprintf("Flat subscription $%.2f/month", base)
		}
	case catalog.PayAsYouGoCost:
		units := usageMultiplier(tool.Category, scale)
		usage := m.UnitCost * units
		entry.MonthlyMin = round2(m.BaseCostMonthly)
		entry.MonthlyEstimate = round2(m.BaseCostMonthly + usage)
		entry.MonthlyMax = round2(m.BaseCostMonthly + usageTailMultiplier*usage)
		entry.Notes = fmt.Sprintf("Usage based: ~%.0f units at $%g/unit", units, m.UnitCost)
		if m.HasFreeTier {
			entry.Notes += "; free tier available"
		}
	case catalog.CustomCost:
		entry.MonthlyMin = 0
		entry.MonthlyMax = customMonthlyMax
		entry.MonthlyEstimate = customMonthlyEstimate
		entry.Notes = "Contact sales for pricing"
	case catalog.UnpricedCost:
		entry.Notes = "Cost information not available"
	default:
		panic(fmt.Sprintf("engine: unhandled cost model %T", model))
	}
	return entry
}

// usageMultiplier is the expected monthly usage volume of a pay-as-you-go tool.
func usageMultiplier(category string, scale ProjectScale) float64 {
	return usageBaseRate(category) * complexityUsageFactor(scale.Complexity) * trafficUsageFactor(scale.Traffic)
}

func complexityUsageFactor(complexity string) float64 {
	switch complexity {
	case ComplexityComplex:
		return 2.5
	case ComplexityMedium:
		return 1.5
	default:
		return 1
	}
}

func trafficUsageFactor(traffic string) float64 {
	switch traffic {
	case TierHigh:
		return 5
	case TierMedium:
		return 2
	default:
		return 1
	}
}

// ScalingFactor is the global multiplier applied to summed tool costs.
func ScalingFactor(scale ProjectScale) float64 {
	factor := phaseFactor(scale.Phase) * complexityCostFactor(scale.Complexity) * usersFactor(scale.ExpectedUsers)
	if scale.Traffic == TierHigh {
		factor *= highTrafficMultiplier
	}
	return factor
}

func phaseFactor(phase string) float64 {
	switch phase {
	case PhasePrototype:
		return 0.5
	case PhaseProduction:
		return 1.0
	default:
		return 0.8
	}
}

func complexityCostFactor(complexity string) float64 {
	switch complexity {
	case ComplexityComplex:
		return 1.5
	case ComplexityMedium:
		return 1.2
	default:
		return 1.0
	}
}

func usersFactor(users int) float64 {
	switch {
	case users >= 100000:
		return 2.0
	case users >= 10000:
		return 1.5
	case users >= 1000:
		return 1.2
	default:
		return 1.0
	}
}

func costConfidence(variable bool, scale ProjectScale) string {
	demanding := scale.Complexity == ComplexityComplex || scale.Traffic == TierHigh
	switch {
	case variable && demanding:
		return ConfidenceLow
	case variable || demanding:
		return ConfidenceMedium
	default:
		return ConfidenceHigh
	}
}
