package catalog

import (
	"context"
	"sync"
)

// MemoryRepo serves a fixed catalog from memory and is safe for concurrent use.
type MemoryRepo struct {
	mu    sync.RWMutex
	tools []ToolProfile
}

// NewMemoryRepo constructs a MemoryRepo holding tools in the given order.
func NewMemoryRepo(tools ...ToolProfile) *MemoryRepo {
	r := &MemoryRepo{}
	r.Replace(tools)
	return r
}

// Replace swaps the catalog contents.
func (r *MemoryRepo) Replace(tools []ToolProfile) {
	normalized := make([]ToolProfile, 0, len(tools))
	for _, t := range tools {
		t.Normalize()
		normalized = append(normalized, t)
	}
	r.mu.Lock()
	r.tools = normalized
	r.mu.Unlock()
}

// ListTools returns a copy of the catalog.
func (r *MemoryRepo) ListTools(ctx context.Context) ([]ToolProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]ToolProfile, len(r.tools))
	copy(out, r.tools)
	return out, nil
}

var _ Repo = (*MemoryRepo)(nil)
