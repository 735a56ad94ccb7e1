package engine

import (
	"regexp"
	"strconv"
	"strings"
)

var userCountPattern = regexp.MustCompile(`(\d{1,3}(?:,\d{3})+|\d+(?:\.\d+)?)\s*(k|m|thousand|million)?\+?\s*(?:(?:daily|monthly|weekly|active|paying)\s+)*(?:users|customers|visitors|members|subscribers|people)`)

var (
	highTrafficKeywords = []string{"high traffic", "high-traffic", "viral", "millions of"}
	prototypeKeywords   = []string{"prototype", "proof of concept", "poc", "hackathon", "side project"}
	mvpKeywords         = []string{"mvp", "minimum viable"}
	productionKeywords  = []string{"production", "launch", "enterprise", "at scale"}
)

// Traffic thresholds by expected users.
const (
	highTrafficUsers   = 100000
	mediumTrafficUsers = 5000
)

// DeriveScale estimates the scale a project will run at from its idea, profile and
// the caller's skill profile.
func DeriveScale(projectIdea string, profile ProjectProfile, skill SkillProfile) ProjectScale {
	text := strings.ToLower(projectIdea)
	words := wordSet(text)

	complexity := profile.Complexity
	if complexity == "" {
		complexity = ComplexitySimple
	}
	users := ParseExpectedUsers(text)
	if users <= 0 {
		users = defaultUsers(complexity)
	}

	traffic := TierLow
	switch {
	case users >= highTrafficUsers || matchesAny(text, words, highTrafficKeywords):
		traffic = TierHigh
	case users >= mediumTrafficUsers:
		traffic = TierMedium
	}

	var phase string
	switch {
	case matchesAny(text, words, prototypeKeywords):
		phase = PhasePrototype
	case matchesAny(text, words, mvpKeywords):
		phase = PhaseMVP
	case matchesAny(text, words, productionKeywords):
		phase = PhaseProduction
	case skill.Beginner():
		phase = PhasePrototype
	default:
		phase = PhaseMVP
	}

	return ProjectScale{
		Complexity:    complexity,
		ExpectedUsers: users,
		Traffic:       traffic,
		Phase:         phase,
	}
}

// ParseExpectedUsers returns the largest user count mentioned in text, or 0.
func ParseExpectedUsers(text string) int {
	best := 0
	for _, m := range userCountPattern.FindAllStringSubmatch(strings.ToLower(text), -1) {
		n, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}
		switch m[2] {
		case "k", "thousand":
			n *= 1000
		case "m", "million":
			n *= 1000000
		}
		if int(n) > best {
			best = int(n)
		}
	}
	return best
}

func defaultUsers(complexity string) int {
	switch complexity {
	case ComplexityComplex:
		return 10000
	case ComplexityMedium:
		return 1000
	default:
		return 100
	}
}
