package engine

import (
	"math"

	"stackfast/internal/catalog"
)

// Signal ceilings. The four signals sum to at most 100.
const (
	popularityWeight   = 30.0
	skillFitPerAxis    = 15.0
	skillGapPenalty    = 3.75
	sentimentHighBonus = 20.0
	sentimentBonus     = 12.0
	alignmentCap       = 20.0
	complexityFitFull  = 10.0
	complexityFitHalf  = 5.0
	freePricingBonus   = 5.0
	categoryFitBonus   = 5.0
)

// ScoreBreakdown holds the bounded signals behind a compatibility score.
type ScoreBreakdown struct {
	Popularity float64
	SkillFit   float64
	Sentiment  float64
	Alignment  float64
}

// Total returns the clamped sum of the signals, rounded to two decimals.
func (b ScoreBreakdown) Total() float64 {
	return round2(clamp(b.Popularity+b.SkillFit+b.Sentiment+b.Alignment, 0, 100))
}

// Score returns the compatibility of tool with the project and skill profile on a 0-100 scale.
func Score(tool catalog.ToolProfile, profile ProjectProfile, skill SkillProfile) float64 {
	return Explain(tool, profile, skill).Total()
}

// Explain computes each scoring signal separately.
func Explain(tool catalog.ToolProfile, profile ProjectProfile, skill SkillProfile) ScoreBreakdown {
	return ScoreBreakdown{
		Popularity: clamp(tool.PopularityScore, 0, 1) * popularityWeight,
		SkillFit:   skillFit(tool.Skills.Setup, skill.Setup) + skillFit(tool.Skills.Daily, skill.Daily),
		Sentiment:  sentimentScore(tool.CommunitySentiment),
		Alignment:  alignment(tool, profile),
	}
}

func skillFit(required, tolerance int) float64 {
	gap := math.Abs(float64(required - tolerance))
	return clamp(skillFitPerAxis-skillGapPenalty*gap, 0, skillFitPerAxis)
}

func sentimentScore(sentiment string) float64 {
	switch sentiment {
	case catalog.SentimentHighlyPositive:
		return sentimentHighBonus
	case catalog.SentimentPositive:
		return sentimentBonus
	default:
		return 0
	}
}

func alignment(tool catalog.ToolProfile, profile ProjectProfile) float64 {
	score := complexityFit(profile.Complexity, tool.Skills.Setup)
	if tool.HasFreeOption() {
		score += freePricingBonus
	}
	if CategoryFits(tool.Category, profile.ProjectType) {
		score += categoryFitBonus
	}
	return clamp(score, 0, alignmentCap)
}

func complexityFit(complexity string, setup int) float64 {
	switch {
	case complexity == ComplexitySimple && setup <= 2:
		return complexityFitFull
	case complexity == ComplexityMedium && setup <= 3:
		return complexityFitHalf
	case complexity == ComplexityComplex && setup >= 3:
		return complexityFitFull
	default:
		return 0
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
