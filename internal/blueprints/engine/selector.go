package engine

import (
	"fmt"
	"sort"
	"strings"

	"stackfast/internal/catalog"
)

// Candidate is a scored tool eligible for the stack.
type Candidate struct {
	Tool   catalog.ToolProfile
	Score  float64
	Reason string
}

// RankCandidates scores every tool and sorts by score descending, keeping catalog
// order between equal scores.
func RankCandidates(tools []catalog.ToolProfile, profile ProjectProfile, skill SkillProfile) []Candidate {
	out := make([]Candidate, 0, len(tools))
	for _, tool := range tools {
		breakdown := Explain(tool, profile, skill)
		out = append(out, Candidate{
			Tool:   tool,
			Score:  breakdown.Total(),
			Reason: explainReason(tool, profile, breakdown),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// SelectStack picks at most one tool per category. Preferred tools are seeded first
// in the order given, then candidates are taken in order until opts.MaxStackSize is
// reached. Candidates below opts.AcceptanceThreshold, or whose category rules collide
// with the stack, are skipped.
func SelectStack(candidates []Candidate, preferredIDs []string, opts Options) ([]Candidate, []Warning) {
	opts = opts.normalized()
	byID := make(map[string]Candidate, len(candidates))
	for _, c := range candidates {
		if _, ok := byID[c.Tool.ID]; !ok {
			byID[c.Tool.ID] = c
		}
	}

	var (
		stack    = make([]Candidate, 0, opts.MaxStackSize)
		warnings = make([]Warning, 0)
		used     = make(map[string]catalog.ToolProfile)
		picked   = make(map[string]bool)
	)

	for _, raw := range preferredIDs {
		id := strings.TrimSpace(raw)
		if id == "" || picked[id] {
			continue
		}
		c, ok := byID[id]
		if !ok {
			warnings = append(warnings, Warning{
				Type:    WarningPreferenceNotFound,
				Message: fmt.Sprintf("Preferred tool %q is not in the catalog", id),
				ToolID:  id,
			})
			continue
		}
		category := normalizeCategory(c.Tool.Category)
		if holder, taken := used[category]; taken {
			warnings = append(warnings, Warning{
				Type:    WarningPreferenceConflict,
				Message: fmt.Sprintf("%s was not added: %s already covers the %s category", c.Tool.DisplayName(), holder.DisplayName(), c.Tool.Category),
				ToolID:  id,
			})
			continue
		}
		if w, conflict := conflictWarning(c.Tool, used); conflict {
			w.Message += " (kept as a user preference)"
			warnings = append(warnings, w)
		}
		c.Reason = ReasonUserPreference
		stack = append(stack, c)
		used[category] = c.Tool
		picked[id] = true
	}

	for _, c := range candidates {
		if len(stack) >= opts.MaxStackSize {
			break
		}
		category := normalizeCategory(c.Tool.Category)
		if picked[c.Tool.ID] {
			continue
		}
		if _, taken := used[category]; taken {
			continue
		}
		if c.Score < opts.AcceptanceThreshold {
			continue
		}
		if w, conflict := conflictWarning(c.Tool, used); conflict {
			warnings = append(warnings, w)
			continue
		}
		stack = append(stack, c)
		used[category] = c.Tool
		picked[c.Tool.ID] = true
	}
	return stack, warnings
}

// conflictWarning checks the tool's category rules against the stack, and the
// stack's rules against the tool's category.
func conflictWarning(tool catalog.ToolProfile, used map[string]catalog.ToolProfile) (Warning, bool) {
	for _, rule := range tool.ConflictTargets() {
		for _, target := range rule.Targets {
			if holder, ok := used[normalizeCategory(target)]; ok {
				return Warning{
					Type:    WarningToolConflict,
					Message: conflictMessage(tool, holder, rule),
					ToolID:  tool.ID,
				}, true
			}
		}
	}
	category := normalizeCategory(tool.Category)
	for _, holder := range sortedHolders(used) {
		for _, rule := range holder.ConflictTargets() {
			for _, target := range rule.Targets {
				if normalizeCategory(target) == category {
					return Warning{
						Type:    WarningToolConflict,
						Message: conflictMessage(tool, holder, rule),
						ToolID:  tool.ID,
					}, true
				}
			}
		}
	}
	return Warning{}, false
}

func conflictMessage(tool, holder catalog.ToolProfile, rule catalog.Rule) string {
	msg := fmt.Sprintf("%s conflicts with %s (%s)", tool.DisplayName(), holder.DisplayName(), holder.Category)
	if reason := strings.TrimSpace(rule.Reason); reason != "" {
		msg += ": " + reason
	}
	return msg
}

func sortedHolders(used map[string]catalog.ToolProfile) []catalog.ToolProfile {
	keys := make([]string, 0, len(used))
	for k := range used {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]catalog.ToolProfile, 0, len(keys))
	for _, k := range keys {
		out = append(out, used[k])
	}
	return out
}

func explainReason(tool catalog.ToolProfile, profile ProjectProfile, b ScoreBreakdown) string {
	parts := make([]string, 0, 4)
	if b.Popularity >= 0.8*popularityWeight {
		parts = append(parts, "widely adopted")
	}
	if b.SkillFit >= 2*skillFitPerAxis-skillGapPenalty {
		parts = append(parts, "matches your skill level")
	}
	if b.Sentiment == sentimentHighBonus {
		parts = append(parts, "strong community support")
	}
	if tool.HasFreeOption() {
		parts = append(parts, "free to start")
	}
	if CategoryFits(tool.Category, profile.ProjectType) {
		parts = append(parts, fmt.Sprintf("well suited to %s projects", profile.ProjectType))
	}
	if len(parts) == 0 {
		return fmt.Sprintf("Best available %s option (score %.0f)", tool.Category, b.Total())
	}
	first := strings.ToUpper(parts[0][:1]) + parts[0][1:]
	parts[0] = first
	return fmt.Sprintf("%s (score %.0f)", strings.Join(parts, ", "), b.Total())
}

// StackEntries converts selected candidates into output entries.
func StackEntries(selected []Candidate) []StackEntry {
	out := make([]StackEntry, 0, len(selected))
	for _, c := range selected {
		out = append(out, StackEntry{
			ToolID:             c.Tool.ID,
			Name:               c.Tool.DisplayName(),
			Category:           c.Tool.Category,
			Reason:             c.Reason,
			CompatibilityScore: c.Score,
		})
	}
	return out
}

// StackTools returns the catalog entries of the selected candidates in stack order.
func StackTools(selected []Candidate) []catalog.ToolProfile {
	out := make([]catalog.ToolProfile, 0, len(selected))
	for _, c := range selected {
		out = append(out, c.Tool)
	}
	return out
}
