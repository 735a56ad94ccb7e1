package enhance

import (
	"sort"
	"strings"

	"stackfast/internal/catalog"
	"stackfast/internal/shared/telemetry"
)

// ValidatePicks drops picks whose tool id is not in the catalog, drops unknown or
// self-referencing alternatives, and collapses repeated ids to their first pick. The
// survivors are ordered by priority, keeping the provider's order on ties. Dropped
// tool ids are returned for auditing.
func ValidatePicks(picks []AIToolPick, idx catalog.Index) ([]AIToolPick, []string) {
	out := make([]AIToolPick, 0, len(picks))
	dropped := make([]string, 0)
	seen := make(map[string]bool, len(picks))
	for _, p := range picks {
		id := strings.TrimSpace(p.ToolID)
		if _, ok := idx[id]; !ok {
			telemetry.Warn("enhance.unknown_tool", map[string]any{"tool_id": id})
			dropped = append(dropped, id)
			continue
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		p.ToolID = id
		p.Alternatives = validAlternatives(id, p.Alternatives, idx)
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return priorityKey(out[i].Priority) < priorityKey(out[j].Priority)
	})
	return out, dropped
}

func validAlternatives(owner string, alts []string, idx catalog.Index) []string {
	out := make([]string, 0, len(alts))
	seen := make(map[string]bool, len(alts))
	for _, raw := range alts {
		id := strings.TrimSpace(raw)
		if id == owner || seen[id] {
			continue
		}
		if _, ok := idx[id]; !ok {
			telemetry.Warn("enhance.unknown_alternative", map[string]any{"tool_id": owner, "alternative": id})
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// priorityKey sorts missing or non-positive priorities last.
func priorityKey(p int) int {
	if p <= 0 {
		return int(^uint(0) >> 1)
	}
	return p
}
