package health

import (
	"context"
	"time"

	"stackfast/internal/catalog"
)

// Catalog states reported by Status.
const (
	CatalogOK          = "ok"
	CatalogUnavailable = "unavailable"
	CatalogUnchecked   = "unchecked"
)

const defaultCheckTimeout = 2 * time.Second

// Service encapsulates health-related checks.
type Service struct {
	Catalog catalog.Repo
	Timeout time.Duration
}

// Report is the health payload.
type Report struct {
	OK      bool   `json:"ok"`
	Catalog string `json:"catalog"`
	Tools   int    `json:"tools"`
}

// NewService constructs a new health service.
func NewService(repo catalog.Repo) *Service {
	return &Service{Catalog: repo, Timeout: defaultCheckTimeout}
}

// Status reports process liveness and whether the catalog can be read. The
// process stays OK when the catalog is down; blueprint routes answer 503 then.
func (s *Service) Status(ctx context.Context) Report {
	if s == nil || s.Catalog == nil {
		return Report{OK: true, Catalog: CatalogUnchecked}
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = defaultCheckTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tools, err := s.Catalog.ListTools(ctx)
	if err != nil {
		return Report{OK: true, Catalog: CatalogUnavailable}
	}
	return Report{OK: true, Catalog: CatalogOK, Tools: len(tools)}
}
