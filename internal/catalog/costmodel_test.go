package catalog

import (
	"encoding/json"
	"testing"
)

func TestDecodeCostModelVariants(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want CostModel
	}{
		{name: "free", raw: `{"type":"Free"}`, want: FreeCost{}},
		{name: "subscription", raw: `{"type":"Subscription","base_cost_monthly":20,"has_free_tier":true}`, want: SubscriptionCost{BaseCostMonthly: 20, HasFreeTier: true}},
		{name: "payg", raw: `{"type":"Pay-as-you-go","base_cost_monthly":5,"unit_cost":0.02}`, want: PayAsYouGoCost{BaseCostMonthly: 5, UnitCost: 0.02}},
		{name: "payg lowercase alias", raw: `{"type":"payg","unit_cost":1,"free_tier":true}`, want: PayAsYouGoCost{UnitCost: 1, HasFreeTier: true}},
		{name: "custom", raw: `{"type":"Custom"}`, want: CustomCost{}},
		{name: "unknown", raw: `{"type":"Barter"}`, want: UnpricedCost{Declared: "Barter"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeCostModel([]byte(tc.raw))
			if err != nil {
				t.Fatalf("DecodeCostModel: %v", err)
			}
			if got != tc.want {
				t.Fatalf("expected %#v, got %#v", tc.want, got)
			}
		})
	}
}

func TestDecodeCostModelRequiresVariantFields(t *testing.T) {
	if _, err := DecodeCostModel([]byte(`{"type":"Subscription"}`)); err == nil {
		t.Fatalf("expected error for subscription without base cost")
	}
	if _, err := DecodeCostModel([]byte(`{"type":"Pay-as-you-go","base_cost_monthly":3}`)); err == nil {
		t.Fatalf("expected error for pay-as-you-go without unit cost")
	}
}

func TestToolProfileJSONCarriesCostModel(t *testing.T) {
	raw := `{"id":"openai","name":"OpenAI API","category":"AI/ML API","skills":{"setup":2,"daily":2},
		"pricing_model":"usage-based","popularity_score":0.9,"community_sentiment":"positive",
		"costModel":{"type":"Pay-as-you-go","unit_cost":0.002},
		"rules":[{"kind":"category","targets":["Self-hosted LLM"],"reason":"pick one inference path"}]}`
	var tool ToolProfile
	if err := json.Unmarshal([]byte(raw), &tool); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	m, ok := tool.CostModel.(PayAsYouGoCost)
	if !ok || m.UnitCost != 0.002 {
		t.Fatalf("unexpected cost model %#v", tool.CostModel)
	}
	if len(tool.ConflictTargets()) != 1 {
		t.Fatalf("expected one conflict rule, got %d", len(tool.ConflictTargets()))
	}

	encoded, err := json.Marshal(tool)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back ToolProfile
	if err := json.Unmarshal(encoded, &back); err != nil {
		t.Fatalf("unmarshal encoded: %v", err)
	}
	if back.CostModel != tool.CostModel {
		t.Fatalf("cost model lost in encoding: %s", encoded)
	}
}

func TestDeriveCostModel(t *testing.T) {
	cases := []struct {
		pricing  string
		baseline float64
		want     CostModel
	}{
		{pricing: "free", want: FreeCost{}},
		{pricing: "free-tier", baseline: 25, want: SubscriptionCost{BaseCostMonthly: 25, HasFreeTier: true}},
		{pricing: "paid", baseline: 10, want: SubscriptionCost{BaseCostMonthly: 10}},
		{pricing: "usage-based", baseline: 0.5, want: PayAsYouGoCost{UnitCost: 0.5}},
		{pricing: "", want: FreeCost{}},
	}
	for _, tc := range cases {
		if got := DeriveCostModel(tc.pricing, tc.baseline); got != tc.want {
			t.Fatalf("DeriveCostModel(%q, %v) = %#v, want %#v", tc.pricing, tc.baseline, got, tc.want)
		}
	}
}

func TestValidate(t *testing.T) {
	valid := ToolProfile{ID: "react", Category: "frontend", Skills: Skills{Setup: 1, Daily: 2}, PopularityScore: 0.9}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid tool, got %v", err)
	}
	invalid := []ToolProfile{
		{Category: "frontend", Skills: Skills{Setup: 1, Daily: 1}},
		{ID: "x", Skills: Skills{Setup: 1, Daily: 1}},
		{ID: "x", Category: "c", Skills: Skills{Setup: 0, Daily: 1}},
		{ID: "x", Category: "c", Skills: Skills{Setup: 1, Daily: 6}},
		{ID: "x", Category: "c", Skills: Skills{Setup: 1, Daily: 1}, PopularityScore: 1.5},
		{ID: "x", Category: "c", Skills: Skills{Setup: 1, Daily: 1}, BaselineCost: -1},
	}
	for i, tool := range invalid {
		if err := tool.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error", i)
		}
	}
}
