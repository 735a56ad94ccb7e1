package engine

import (
	"testing"

	"stackfast/internal/catalog"
)

func candidate(id, category string, score float64, rules ...catalog.Rule) Candidate {
	t := tool(id, category, 2, 2, 0.5, "free", catalog.SentimentNeutral)
	t.Rules = rules
	return Candidate{Tool: t, Score: score, Reason: "generated"}
}

func ids(stack []Candidate) []string {
	out := make([]string, 0, len(stack))
	for _, c := range stack {
		out = append(out, c.Tool.ID)
	}
	return out
}

func hasWarning(warnings []Warning, kind, toolID string) bool {
	for _, w := range warnings {
		if w.Type == kind && w.ToolID == toolID {
			return true
		}
	}
	return false
}

func TestSelectStackOneToolPerCategory(t *testing.T) {
	stack, _ := SelectStack([]Candidate{
		candidate("react", "frontend", 90),
		candidate("vue", "Frontend", 85),
		candidate("postgres", "database", 80),
		candidate("mongo", "database", 79),
	}, nil, DefaultOptions())
	got := ids(stack)
	if len(got) != 2 || got[0] != "react" || got[1] != "postgres" {
		t.Fatalf("expected [react postgres], got %v", got)
	}
}

func TestSelectStackPreferredSeedsBeforeRanking(t *testing.T) {
	stack, warnings := SelectStack([]Candidate{
		candidate("react", "frontend", 90),
		candidate("postgres", "database", 80),
		candidate("vue", "frontend", 10),
	}, []string{"vue", "ghost"}, DefaultOptions())
	got := ids(stack)
	if len(got) != 2 || got[0] != "vue" || got[1] != "postgres" {
		t.Fatalf("expected [vue postgres], got %v", got)
	}
	if stack[0].Reason != ReasonUserPreference {
		t.Fatalf("expected preferred reason, got %q", stack[0].Reason)
	}
	if !hasWarning(warnings, WarningPreferenceNotFound, "ghost") {
		t.Fatalf("expected preference-not-found warning, got %+v", warnings)
	}
}

func TestSelectStackSecondPreferenceInSameCategoryIsDropped(t *testing.T) {
	stack, warnings := SelectStack([]Candidate{
		candidate("react", "frontend", 90),
		candidate("vue", "frontend", 10),
	}, []string{"vue", "react"}, DefaultOptions())
	if got := ids(stack); len(got) != 1 || got[0] != "vue" {
		t.Fatalf("expected [vue], got %v", got)
	}
	if !hasWarning(warnings, WarningPreferenceConflict, "react") {
		t.Fatalf("expected preference-conflict warning, got %+v", warnings)
	}
}

func TestSelectStackConflictRuleSkipsToolWithWarning(t *testing.T) {
	bundlesAuth := catalog.Rule{Kind: catalog.RuleKindCategory, Targets: []string{"authentication"}, Reason: "ships its own auth"}
	stack, warnings := SelectStack([]Candidate{
		candidate("clerk", "authentication", 95),
		candidate("supabase", "database", 90, bundlesAuth),
		candidate("postgres", "database", 70),
	}, nil, DefaultOptions())
	got := ids(stack)
	if len(got) != 2 || got[0] != "clerk" || got[1] != "postgres" {
		t.Fatalf("expected [clerk postgres], got %v", got)
	}
	if !hasWarning(warnings, WarningToolConflict, "supabase") {
		t.Fatalf("expected tool-conflict warning for supabase, got %+v", warnings)
	}
}

func TestSelectStackConflictRuleOfSelectedToolBlocksCategory(t *testing.T) {
	bundlesAuth := catalog.Rule{Kind: catalog.RuleKindCategory, Targets: []string{"authentication"}}
	stack, warnings := SelectStack([]Candidate{
		candidate("supabase", "database", 95, bundlesAuth),
		candidate("clerk", "authentication", 90),
	}, nil, DefaultOptions())
	if got := ids(stack); len(got) != 1 || got[0] != "supabase" {
		t.Fatalf("expected [supabase], got %v", got)
	}
	if !hasWarning(warnings, WarningToolConflict, "clerk") {
		t.Fatalf("expected tool-conflict warning for clerk, got %+v", warnings)
	}
}

func TestSelectStackAppliesThresholdAndCap(t *testing.T) {
	candidates := []Candidate{
		candidate("a", "c1", 99),
		candidate("b", "c2", 98),
		candidate("c", "c3", 97),
		candidate("d", "c4", 39.99),
	}
	stack, _ := SelectStack(candidates, nil, Options{MaxStackSize: 2, AcceptanceThreshold: 40})
	if got := ids(stack); len(got) != 2 || got[1] != "b" {
		t.Fatalf("expected cap of 2, got %v", got)
	}
	stack, _ = SelectStack(candidates, nil, Options{MaxStackSize: 10, AcceptanceThreshold: 40})
	if len(stack) != 3 {
		t.Fatalf("expected threshold to drop d, got %v", ids(stack))
	}
	stack, _ = SelectStack(candidates, nil, Options{MaxStackSize: 10})
	if len(stack) != 4 {
		t.Fatalf("expected zero threshold to accept all, got %v", ids(stack))
	}
}

func TestSelectStackPreferredSurviveCap(t *testing.T) {
	stack, _ := SelectStack([]Candidate{
		candidate("a", "c1", 99),
		candidate("b", "c2", 5),
		candidate("c", "c3", 5),
	}, []string{"b", "c"}, Options{MaxStackSize: 1, AcceptanceThreshold: 40})
	if got := ids(stack); len(got) != 2 || got[0] != "b" || got[1] != "c" {
		t.Fatalf("expected preferred tools kept beyond the cap, got %v", got)
	}
}

func TestRankCandidatesStableOnTies(t *testing.T) {
	tools := []catalog.ToolProfile{
		tool("first", "a", 2, 2, 0.5, "free", catalog.SentimentNeutral),
		tool("second", "b", 2, 2, 0.5, "free", catalog.SentimentNeutral),
		tool("best", "c", 2, 2, 0.9, "free", catalog.SentimentNeutral),
	}
	ranked := RankCandidates(tools, Analyze("a simple blog"), SkillProfile{Setup: 2, Daily: 2})
	if got := ids(ranked); got[0] != "best" || got[1] != "first" || got[2] != "second" {
		t.Fatalf("expected [best first second], got %v", got)
	}
	for _, c := range ranked {
		if c.Reason == "" {
			t.Fatalf("expected generated reason for %s", c.Tool.ID)
		}
	}
}
