package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"stackfast/internal/blueprints"
	"stackfast/internal/catalog"
)

func newCatalogCmd(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Inspect the tool catalog",
	}

	var category string
	list := &cobra.Command{
		Use:   "list",
		Short: "List catalog tools, optionally filtered by category",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := LoadSettings(root.config)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			restore := quietTelemetry(cmd)
			defer restore()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			svc, err := newService(ctx, settings, false)
			if err != nil {
				return err
			}
			tools, err := svc.ListTools(ctx, category)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if root.json {
				return writeJSON(out, blueprints.ToolListResponse{
					Items:      tools,
					Categories: catalog.Categories(tools),
					Total:      len(tools),
				})
			}
			st := newStyles(colorEnabled(out, root.noColor))
			t := newTable(st, "ID", "NAME", "CATEGORY", "SKILLS", "PRICING", "POPULARITY")
			for _, tool := range tools {
				t.addRow(tool.ID, tool.DisplayName(), tool.Category,
					fmt.Sprintf("%d/%d", tool.Skills.Setup, tool.Skills.Daily),
					costLabel(tool), fmt.Sprintf("%.2f", tool.PopularityScore))
			}
			fmt.Fprint(out, t.render())
			fmt.Fprintln(out, st.muted.Render(fmt.Sprintf("%d tools", len(tools))))
			return nil
		},
	}
	list.Flags().StringVar(&category, "category", "", "Only list tools in this category")
	cmd.AddCommand(list)
	return cmd
}

func costLabel(t catalog.ToolProfile) string {
	switch m := t.CostModel.(type) {
	case catalog.FreeCost:
		return "free"
	case catalog.SubscriptionCost:
		label := money(m.BaseCostMonthly) + "/mo"
		if m.HasFreeTier {
			label += " (free tier)"
		}
		return label
	case catalog.PayAsYouGoCost:
		return fmt.Sprintf("%s + %s/unit", money(m.BaseCostMonthly), money(m.UnitCost))
	case catalog.CustomCost:
		return "custom"
	case catalog.UnpricedCost:
		return "unpriced"
	default:
		return strings.TrimSpace(t.PricingModel)
	}
}
