package enhance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"stackfast/internal/blueprints/engine"
	"stackfast/internal/catalog"
	"stackfast/internal/llm"
	"stackfast/internal/shared/telemetry"
)

// Context sources.
const (
	ContextSourceAI    = "ai"
	ContextSourceLocal = "local"
)

// ErrEmptyStack is returned when no provider pick survives validation.
var ErrEmptyStack = errors.New("no valid tools in AI recommendation")

// Enhancer builds recommendations with help from an LLM provider. Any provider
// failure aborts the call; callers fall back to engine.GenerateBlueprint.
type Enhancer struct {
	Client llm.Client
	// MaxStackSize caps the stack; zero uses engine.DefaultMaxStackSize.
	MaxStackSize int
	// ToolsPerCategory limits the catalog digest; zero uses DefaultToolsPerCategory.
	ToolsPerCategory int
}

// NewEnhancer constructs an Enhancer.
func NewEnhancer(client llm.Client, maxStackSize int) *Enhancer {
	return &Enhancer{Client: client, MaxStackSize: maxStackSize}
}

// Enhance runs the provider-assisted pipeline.
func (e *Enhancer) Enhance(ctx context.Context, input engine.Input, tools []catalog.ToolProfile) (EnhancedRecommendation, error) {
	if e == nil || e.Client == nil {
		return EnhancedRecommendation{}, llm.ErrNotImplemented
	}

	profile, completeness, source, err := e.projectContext(ctx, input.ProjectIdea)
	if err != nil {
		return EnhancedRecommendation{}, err
	}

	ctxJSON, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return EnhancedRecommendation{}, fmt.Errorf("encode project context: %w", err)
	}
	raw, err := e.Client.Complete(ctx, llm.Request{
		SystemPrompt: systemPromptRecommend,
		UserPrompt:   buildRecommendPrompt(string(ctxJSON), input.SkillProfile, input.PreferredToolIDs, CatalogDigest(tools, e.ToolsPerCategory)),
		Temperature:  0.3,
		MaxTokens:    2000,
		JSONMode:     true,
	})
	if err != nil {
		return EnhancedRecommendation{}, fmt.Errorf("ai recommendation: %w", err)
	}
	var aiRec AIRecommendation
	if err := json.Unmarshal([]byte(extractJSON(raw)), &aiRec); err != nil {
		return EnhancedRecommendation{}, fmt.Errorf("parse ai recommendation: %w", err)
	}

	idx := catalog.NewIndex(tools)
	picks, dropped := ValidatePicks(aiRec.RecommendedTools, idx)

	candidates := make([]engine.Candidate, 0, len(picks)+len(input.PreferredToolIDs))
	alternatives := make(map[string][]string, len(picks))
	inCandidates := make(map[string]bool, len(picks))
	for _, p := range picks {
		tool := idx[p.ToolID]
		reason := p.Reason
		if reason == "" {
			reason = "Recommended by AI analysis"
		}
		candidates = append(candidates, engine.Candidate{
			Tool:   tool,
			Score:  engine.Score(tool, profile, input.SkillProfile),
			Reason: reason,
		})
		alternatives[p.ToolID] = p.Alternatives
		inCandidates[p.ToolID] = true
	}
	for _, id := range input.PreferredToolIDs {
		if tool, ok := idx[id]; ok && !inCandidates[id] {
			candidates = append(candidates, engine.Candidate{Tool: tool, Score: engine.Score(tool, profile, input.SkillProfile)})
			inCandidates[id] = true
		}
	}
	if len(candidates) == 0 {
		return EnhancedRecommendation{}, ErrEmptyStack
	}

	selected, warnings := engine.SelectStack(candidates, input.PreferredToolIDs, engine.Options{MaxStackSize: e.MaxStackSize})
	if len(selected) == 0 {
		return EnhancedRecommendation{}, ErrEmptyStack
	}
	scale := engine.DeriveScale(input.ProjectIdea, profile, input.SkillProfile)
	rec := engine.Assemble(profile, scale, selected, warnings)

	for id := range alternatives {
		if !stackHas(selected, id) {
			delete(alternatives, id)
		}
	}
	roadmap := aiRec.Roadmap
	if roadmap == nil {
		roadmap = []RoadmapPhase{}
	}
	return EnhancedRecommendation{
		Recommendation: rec,
		AIAnalysis: AIAnalysis{
			ProjectContext:      profile,
			ContextSource:       source,
			ContextCompleteness: completeness,
			Reasoning:           aiRec.Reasoning,
			Risks:               nonNil(aiRec.Risks),
			LearningPath:        nonNil(aiRec.LearningPath),
			Alternatives:        alternatives,
			DroppedToolIDs:      dropped,
		},
		Roadmap:    roadmap,
		Confidence: Confidence(len(selected), aiRec.Reasoning, completeness),
	}, nil
}

// projectContext asks the provider for a structured context. Transport errors abort;
// unparseable output falls back to the local analyzer.
func (e *Enhancer) projectContext(ctx context.Context, idea string) (engine.ProjectProfile, float64, string, error) {
	local := engine.Analyze(idea)
	raw, err := e.Client.Complete(ctx, llm.Request{
		SystemPrompt: systemPromptContext,
		UserPrompt:   buildContextPrompt(idea),
		Temperature:  0,
		MaxTokens:    600,
		JSONMode:     true,
	})
	if err != nil {
		return engine.ProjectProfile{}, 0, "", fmt.Errorf("ai project context: %w", err)
	}
	profile, completeness, err := ParseProjectContext(raw, local)
	if err != nil {
		telemetry.Warn("enhance.context_fallback", map[string]any{"error": err.Error()})
		return local, 0, ContextSourceLocal, nil
	}
	return profile, completeness, ContextSourceAI, nil
}

func stackHas(selected []engine.Candidate, id string) bool {
	for _, c := range selected {
		if c.Tool.ID == id {
			return true
		}
	}
	return false
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}
