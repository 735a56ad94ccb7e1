package blueprints

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"stackfast/internal/blueprints/engine"
	"stackfast/internal/blueprints/enhance"
	"stackfast/internal/catalog"
	"stackfast/internal/shared/metrics"
	"stackfast/internal/shared/telemetry"
)

// Enhancer is the provider-assisted pipeline.
type Enhancer interface {
	Enhance(ctx context.Context, input engine.Input, tools []catalog.ToolProfile) (enhance.EnhancedRecommendation, error)
}

// Service orchestrates catalog access, the rule-based engine and the AI path.
type Service struct {
	Catalog  catalog.Repo
	Enhancer Enhancer
	Options  engine.Options
	now      func() time.Time
	newID    func() string
}

// NewService constructs a Service. enhancer may be nil, in which case the enhanced
// route always answers with the rule-based result.
func NewService(repo catalog.Repo, enhancer Enhancer, opts engine.Options) *Service {
	return &Service{Catalog: repo, Enhancer: enhancer, Options: opts}
}

// ListTools returns the catalog, optionally filtered by category (case-insensitive).
func (s *Service) ListTools(ctx context.Context, category string) ([]catalog.ToolProfile, error) {
	tools, err := s.loadCatalog(ctx)
	if err != nil {
		return nil, err
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return tools, nil
	}
	out := make([]catalog.ToolProfile, 0, len(tools))
	for _, t := range tools {
		if strings.EqualFold(t.Category, category) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Generate runs the rule-based pipeline.
func (s *Service) Generate(ctx context.Context, input engine.Input) (Blueprint, error) {
	start := s.clock()
	if err := validate(input); err != nil {
		return Blueprint{}, err
	}
	tools, err := s.loadCatalog(ctx)
	if err != nil {
		return Blueprint{}, err
	}
	rec := engine.GenerateBlueprint(input, tools, s.Options)
	out := Blueprint{BlueprintID: s.id(), Mode: ModeRuleBased, Recommendation: rec}
	s.observe(out.BlueprintID, ModeRuleBased, start, len(rec.RecommendedStack))
	return out, nil
}

// GenerateEnhanced tries the AI path and falls back to the rule-based pipeline on
// any provider failure. Catalog failures are returned, never masked.
func (s *Service) GenerateEnhanced(ctx context.Context, input engine.Input) (EnhancedBlueprint, error) {
	start := s.clock()
	if err := validate(input); err != nil {
		return EnhancedBlueprint{}, err
	}
	tools, err := s.loadCatalog(ctx)
	if err != nil {
		return EnhancedBlueprint{}, err
	}

	id := s.id()
	if s.Enhancer != nil {
		enhanced, err := s.Enhancer.Enhance(ctx, input, tools)
		if err == nil {
			analysis := enhanced.AIAnalysis
			confidence := enhanced.Confidence
			s.observe(id, ModeAI, start, len(enhanced.RecommendedStack))
			return EnhancedBlueprint{
				BlueprintID:    id,
				Mode:           ModeAI,
				Recommendation: enhanced.Recommendation,
				AIAnalysis:     &analysis,
				Roadmap:        enhanced.Roadmap,
				Confidence:     &confidence,
			}, nil
		}
		if ctx.Err() != nil {
			return EnhancedBlueprint{}, ctx.Err()
		}
		metrics.IncAIFallback()
		telemetry.Warn("blueprint.ai_fallback", map[string]any{
			"blueprint_id": id,
			"error":        err.Error(),
		})
	}

	rec := engine.GenerateBlueprint(input, tools, s.Options)
	s.observe(id, ModeRuleBased, start, len(rec.RecommendedStack))
	return EnhancedBlueprint{BlueprintID: id, Mode: ModeRuleBased, Recommendation: rec}, nil
}

func (s *Service) loadCatalog(ctx context.Context) ([]catalog.ToolProfile, error) {
	if s.Catalog == nil {
		metrics.IncCatalogFailure()
		return nil, fmt.Errorf("%w: no catalog configured", ErrCatalogUnavailable)
	}
	tools, err := s.Catalog.ListTools(ctx)
	if err != nil {
		metrics.IncCatalogFailure()
		telemetry.Error("catalog.fetch_failed", map[string]any{"error": err.Error()})
		return nil, fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
	}
	return tools, nil
}

func (s *Service) observe(id, mode string, start time.Time, stackSize int) {
	elapsed := s.clock().Sub(start)
	metrics.IncBlueprintGenerated(mode)
	metrics.ObserveBlueprintDurationMs(float64(elapsed.Microseconds()) / 1000.0)
	telemetry.Info("blueprint.generated", map[string]any{
		"blueprint_id": id,
		"mode":         mode,
		"stack_size":   stackSize,
		"duration_ms":  float64(elapsed.Microseconds()) / 1000.0,
	})
}

func (s *Service) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

func (s *Service) id() string {
	if s.newID != nil {
		return s.newID()
	}
	return uuid.NewString()
}

// ValidationError lists the invalid fields of a request.
type ValidationError struct {
	Fields []engine.FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Issue)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Unwrap lets callers match with errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error { return ErrValidation }

func validate(input engine.Input) error {
	if fields := input.Validate(); len(fields) > 0 {
		metrics.IncValidationFailure()
		return &ValidationError{Fields: fields}
	}
	return nil
}
