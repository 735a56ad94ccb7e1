package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"stackfast/internal/shared/telemetry"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// ListTools returns all live tools ordered by catalog position.
func (r *PGRepo) ListTools(ctx context.Context) ([]ToolProfile, error) {
	const query = `
SELECT id, name, category, setup_skill, daily_skill, pricing_model, baseline_cost::float8,
       compatible_with, popularity_score, community_sentiment, cost_model, rules
FROM tools
WHERE deleted_at IS NULL
ORDER BY position ASC, id ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query tools: %w", err)
	}
	defer rows.Close()

	out := make([]ToolProfile, 0, 64)
	for rows.Next() {
		var t ToolProfile
		var compatibleWith []byte
		var costModel []byte
		var rules []byte
		if err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.Category,
			&t.Skills.Setup,
			&t.Skills.Daily,
			&t.PricingModel,
			&t.BaselineCost,
			&compatibleWith,
			&t.PopularityScore,
			&t.CommunitySentiment,
			&costModel,
			&rules,
		); err != nil {
			return nil, fmt.Errorf("scan tool: %w", err)
		}
		if err := decodeToolColumns(&t, compatibleWith, costModel, rules); err != nil {
			telemetry.Warn("catalog.tool_skipped", map[string]any{"tool_id": t.ID, "error": err.Error()})
			continue
		}
		t.Normalize()
		if err := t.Validate(); err != nil {
			telemetry.Warn("catalog.tool_skipped", map[string]any{"tool_id": t.ID, "error": err.Error()})
			continue
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tools: %w", err)
	}
	return out, nil
}

func decodeToolColumns(t *ToolProfile, compatibleWith, costModel, rules []byte) error {
	if len(compatibleWith) > 0 {
		if err := json.Unmarshal(compatibleWith, &t.CompatibleWith); err != nil {
			return fmt.Errorf("compatible_with: %w", err)
		}
	}
	if len(rules) > 0 {
		if err := json.Unmarshal(rules, &t.Rules); err != nil {
			return fmt.Errorf("rules: %w", err)
		}
	}
	if len(costModel) > 0 && string(costModel) != "null" {
		m, err := DecodeCostModel(costModel)
		if err != nil {
			return err
		}
		t.CostModel = m
	}
	return nil
}

// UpsertTools writes tools into the catalog table in one transaction, keyed by id.
// position follows slice order so ListTools returns them in the same order.
func (r *PGRepo) UpsertTools(ctx context.Context, tools []ToolProfile) error {
	const stmt = `
INSERT INTO tools (id, name, category, setup_skill, daily_skill, pricing_model, baseline_cost,
                   compatible_with, popularity_score, community_sentiment, cost_model, rules, position)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
ON CONFLICT (id) DO UPDATE SET
    name = EXCLUDED.name,
    category = EXCLUDED.category,
    setup_skill = EXCLUDED.setup_skill,
    daily_skill = EXCLUDED.daily_skill,
    pricing_model = EXCLUDED.pricing_model,
    baseline_cost = EXCLUDED.baseline_cost,
    compatible_with = EXCLUDED.compatible_with,
    popularity_score = EXCLUDED.popularity_score,
    community_sentiment = EXCLUDED.community_sentiment,
    cost_model = EXCLUDED.cost_model,
    rules = EXCLUDED.rules,
    position = EXCLUDED.position,
    updated_at = now(),
    deleted_at = NULL`

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert: %w", err)
	}
	defer tx.Rollback()

	for i, t := range tools {
		compatibleWith, costModel, rules, err := encodeToolColumns(t)
		if err != nil {
			return fmt.Errorf("encode tool %s: %w", t.ID, err)
		}
		if _, err := tx.ExecContext(ctx, stmt,
			t.ID,
			t.Name,
			t.Category,
			t.Skills.Setup,
			t.Skills.Daily,
			t.PricingModel,
			t.BaselineCost,
			compatibleWith,
			t.PopularityScore,
			t.CommunitySentiment,
			costModel,
			rules,
			i,
		); err != nil {
			return fmt.Errorf("upsert tool %s: %w", t.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert: %w", err)
	}
	return nil
}

func encodeToolColumns(t ToolProfile) (compatibleWith, costModel, rules []byte, err error) {
	if t.CompatibleWith == nil {
		t.CompatibleWith = []string{}
	}
	if t.Rules == nil {
		t.Rules = []Rule{}
	}
	if compatibleWith, err = json.Marshal(t.CompatibleWith); err != nil {
		return nil, nil, nil, err
	}
	if rules, err = json.Marshal(t.Rules); err != nil {
		return nil, nil, nil, err
	}
	if t.CostModel != nil {
		if costModel, err = EncodeCostModel(t.CostModel); err != nil {
			return nil, nil, nil, err
		}
	}
	return compatibleWith, costModel, rules, nil
}

var _ Repo = (*PGRepo)(nil)
