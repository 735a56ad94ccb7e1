package catalog

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Cost model discriminators as they appear in catalog documents.
const (
	CostTypeFree         = "Free"
	CostTypeSubscription = "Subscription"
	CostTypePayAsYouGo   = "Pay-as-you-go"
	CostTypeCustom       = "Custom"
	CostTypeUnpriced     = "Unpriced"
)

// CostModel is a closed set of pricing shapes. Only the types in this file implement it.
type CostModel interface {
	Type() string
	sealedCostModel()
}

// FreeCost never costs anything.
type FreeCost struct{}

// SubscriptionCost is a flat monthly fee.
type SubscriptionCost struct {
	BaseCostMonthly float64
	HasFreeTier     bool
}

// PayAsYouGoCost is a monthly base plus a per-unit usage charge.
type PayAsYouGoCost struct {
	BaseCostMonthly float64
	UnitCost        float64
	HasFreeTier     bool
}

// CustomCost is negotiated pricing; BaseCostMonthly is informational only.
type CustomCost struct {
	BaseCostMonthly float64
}

// UnpricedCost records a cost model type the catalog declared but this service does not know.
type UnpricedCost struct {
	Declared string
}

func (FreeCost) Type() string         { return CostTypeFree }
func (SubscriptionCost) Type() string { return CostTypeSubscription }
func (PayAsYouGoCost) Type() string   { return CostTypePayAsYouGo }
func (CustomCost) Type() string       { return CostTypeCustom }
func (UnpricedCost) Type() string     { return CostTypeUnpriced }

func (FreeCost) sealedCostModel()         {}
func (SubscriptionCost) sealedCostModel() {}
func (PayAsYouGoCost) sealedCostModel()   {}
func (CustomCost) sealedCostModel()       {}
func (UnpricedCost) sealedCostModel()     {}

// IsVariable reports whether the monthly cost depends on usage or negotiation.
func IsVariable(m CostModel) bool {
	switch m.(type) {
	case PayAsYouGoCost, CustomCost, UnpricedCost:
		return true
	default:
		return false
	}
}

// DeriveCostModel builds a cost model from the legacy pricing_model/baseline_cost pair.
func DeriveCostModel(pricingModel string, baseline float64) CostModel {
	switch NormalizePricing(pricingModel) {
	case PricingFree:
		return FreeCost{}
	case PricingFreemium:
		return SubscriptionCost{BaseCostMonthly: baseline, HasFreeTier: true}
	case PricingPaid:
		return SubscriptionCost{BaseCostMonthly: baseline}
	case PricingUsageBased:
		return PayAsYouGoCost{UnitCost: baseline}
	default:
		if baseline > 0 {
			return SubscriptionCost{BaseCostMonthly: baseline}
		}
		return FreeCost{}
	}
}

type costModelDoc struct {
	Type            string   `json:"type"`
	BaseCostMonthly *float64 `json:"base_cost_monthly,omitempty"`
	UnitCost        *float64 `json:"unit_cost,omitempty"`
	HasFreeTier     *bool    `json:"has_free_tier,omitempty"`
	FreeTier        *bool    `json:"free_tier,omitempty"`
}

func (d costModelDoc) freeTier() bool {
	if d.HasFreeTier != nil {
		return *d.HasFreeTier
	}
	return d.FreeTier != nil && *d.FreeTier
}

// DecodeCostModel parses a cost model document. Unknown types decode to UnpricedCost.
func DecodeCostModel(data []byte) (CostModel, error) {
	var doc costModelDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode cost model: %w", err)
	}
	switch normalizeCostType(doc.Type) {
	case CostTypeFree:
		return FreeCost{}, nil
	case CostTypeSubscription:
		if doc.BaseCostMonthly == nil {
			return nil, fmt.Errorf("cost model %s requires base_cost_monthly", CostTypeSubscription)
		}
		return SubscriptionCost{BaseCostMonthly: *doc.BaseCostMonthly, HasFreeTier: doc.freeTier()}, nil
	case CostTypePayAsYouGo:
		if doc.UnitCost == nil {
			return nil, fmt.Errorf("cost model %s requires unit_cost", CostTypePayAsYouGo)
		}
		m := PayAsYouGoCost{UnitCost: *doc.UnitCost, HasFreeTier: doc.freeTier()}
		if doc.BaseCostMonthly != nil {
			m.BaseCostMonthly = *doc.BaseCostMonthly
		}
		return m, nil
	case CostTypeCustom:
		m := CustomCost{}
		if doc.BaseCostMonthly != nil {
			m.BaseCostMonthly = *doc.BaseCostMonthly
		}
		return m, nil
	default:
		return UnpricedCost{Declared: strings.TrimSpace(doc.Type)}, nil
	}
}

// EncodeCostModel renders m in catalog document form.
func EncodeCostModel(m CostModel) ([]byte, error) {
	return json.Marshal(costModelToDoc(m))
}

func costModelToDoc(m CostModel) costModelDoc {
	switch v := m.(type) {
	case FreeCost:
		return costModelDoc{Type: CostTypeFree}
	case SubscriptionCost:
		return costModelDoc{Type: CostTypeSubscription, BaseCostMonthly: &v.BaseCostMonthly, HasFreeTier: &v.HasFreeTier}
	case PayAsYouGoCost:
		return costModelDoc{Type: CostTypePayAsYouGo, BaseCostMonthly: &v.BaseCostMonthly, UnitCost: &v.UnitCost, HasFreeTier: &v.HasFreeTier}
	case CustomCost:
		return costModelDoc{Type: CostTypeCustom, BaseCostMonthly: &v.BaseCostMonthly}
	case UnpricedCost:
		return costModelDoc{Type: v.Declared}
	default:
		panic(fmt.Sprintf("catalog: unhandled cost model %T", m))
	}
}

func normalizeCostType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "free":
		return CostTypeFree
	case "subscription", "flat", "monthly":
		return CostTypeSubscription
	case "pay-as-you-go", "pay_as_you_go", "payg", "usage", "usage-based":
		return CostTypePayAsYouGo
	case "custom", "enterprise":
		return CostTypeCustom
	default:
		return ""
	}
}

type toolAlias ToolProfile

type toolDoc struct {
	toolAlias
	CostModel json.RawMessage `json:"costModel,omitempty"`
}

// UnmarshalJSON decodes a catalog entry including its tagged cost model.
func (t *ToolProfile) UnmarshalJSON(data []byte) error {
	var doc toolDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*t = ToolProfile(doc.toolAlias)
	if len(doc.CostModel) > 0 && string(doc.CostModel) != "null" {
		m, err := DecodeCostModel(doc.CostModel)
		if err != nil {
			return fmt.Errorf("tool %s: %w", t.ID, err)
		}
		t.CostModel = m
	}
	return nil
}

// MarshalJSON encodes a catalog entry including its tagged cost model.
func (t ToolProfile) MarshalJSON() ([]byte, error) {
	out := struct {
		toolAlias
		CostModel *costModelDoc `json:"costModel,omitempty"`
	}{toolAlias: toolAlias(t)}
	if t.CostModel != nil {
		doc := costModelToDoc(t.CostModel)
		out.CostModel = &doc
	}
	return json.Marshal(out)
}
