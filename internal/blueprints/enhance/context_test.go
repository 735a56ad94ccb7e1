package enhance

import (
	"testing"

	"stackfast/internal/blueprints/engine"
)

func TestParseProjectContextBackfillsInvalidFields(t *testing.T) {
	local := engine.Analyze("a todo list with login")
	raw := "```json\n{\"projectType\":\"spaceship\",\"complexity\":\"COMPLEX\",\"databaseNeeds\":\"graph\",\"features\":[\"search\",\"teleport\",\"search\"]}\n```"
	got, completeness, err := ParseProjectContext(raw, local)
	if err != nil {
		t.Fatalf("ParseProjectContext: %v", err)
	}
	if got.ProjectType != local.ProjectType {
		t.Fatalf("expected local project type, got %s", got.ProjectType)
	}
	if got.Complexity != engine.ComplexityComplex {
		t.Fatalf("expected complex, got %s", got.Complexity)
	}
	if got.ScalingRequirements != engine.TierHigh {
		t.Fatalf("expected scaling derived from complexity, got %s", got.ScalingRequirements)
	}
	if got.DatabaseNeeds != local.DatabaseNeeds {
		t.Fatalf("expected local database needs, got %s", got.DatabaseNeeds)
	}
	if len(got.Features) != 1 || got.Features[0] != engine.FeatureSearch {
		t.Fatalf("expected [search], got %v", got.Features)
	}
	if completeness != 2.0/8.0 {
		t.Fatalf("expected completeness 0.25, got %v", completeness)
	}
}

func TestParseProjectContextRejectsNonJSON(t *testing.T) {
	local := engine.DefaultProjectProfile()
	got, completeness, err := ParseProjectContext("not json", local)
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if completeness != 0 || got.ProjectType != local.ProjectType {
		t.Fatalf("expected local profile on failure")
	}
}
