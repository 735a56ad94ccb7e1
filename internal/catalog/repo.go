package catalog

import "context"

// Repo gives read access to the tool catalog.
type Repo interface {
	// ListTools returns every tool in catalog order.
	ListTools(ctx context.Context) ([]ToolProfile, error)
}

// Index maps tool ids to their catalog entry.
type Index map[string]ToolProfile

// NewIndex builds an Index from tools; the first entry wins on duplicate ids.
func NewIndex(tools []ToolProfile) Index {
	idx := make(Index, len(tools))
	for _, t := range tools {
		if _, ok := idx[t.ID]; ok {
			continue
		}
		idx[t.ID] = t
	}
	return idx
}

// Categories returns the distinct categories of tools in first-seen order.
func Categories(tools []ToolProfile) []string {
	seen := make(map[string]bool, len(tools))
	out := make([]string, 0, len(tools))
	for _, t := range tools {
		if seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		out = append(out, t.Category)
	}
	return out
}
