package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"stackfast/internal/blueprints"
	"stackfast/internal/blueprints/engine"
	"stackfast/internal/blueprints/enhance"
	"stackfast/internal/bootstrap"
	"stackfast/internal/catalog"
	"stackfast/internal/shared/telemetry"
)

type recommendFlags struct {
	idea     string
	setup    int
	daily    int
	prefer   []string
	enhanced bool
}

func newRecommendCmd(root *rootFlags) *cobra.Command {
	flags := &recommendFlags{}
	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend a stack for a project idea",
		Long: `Score the catalog against a project idea and skill levels and print the
recommended stack, warnings and a monthly cost projection. With --enhanced
the configured LLM provider drives the picks; without a provider, or when it
fails, the rule-based recommendation is printed instead.`,
		Example: `  stackfast recommend --idea "a simple blog" --setup 2 --daily 2
  stackfast recommend --idea "real-time chat for 50k users" --prefer supabase --enhanced`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecommend(cmd, root, flags)
		},
	}
	cmd.Flags().StringVar(&flags.idea, "idea", "", "Project idea in plain language (required)")
	cmd.Flags().IntVar(&flags.setup, "setup", 3, "Setup skill level, 1-5")
	cmd.Flags().IntVar(&flags.daily, "daily", 3, "Daily-use skill level, 1-5")
	cmd.Flags().StringSliceVar(&flags.prefer, "prefer", nil, "Preferred tool ids, in priority order")
	cmd.Flags().BoolVar(&flags.enhanced, "enhanced", false, "Use the configured LLM provider")
	_ = cmd.MarkFlagRequired("idea")
	return cmd
}

func runRecommend(cmd *cobra.Command, root *rootFlags, flags *recommendFlags) error {
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
	svc, err := newService(ctx, settings, flags.enhanced)
	if err != nil {
		return err
	}

	input := engine.Input{
		ProjectIdea:      flags.idea,
		SkillProfile:     engine.SkillProfile{Setup: flags.setup, Daily: flags.daily},
		PreferredToolIDs: flags.prefer,
	}

	out := cmd.OutOrStdout()
	st := newStyles(colorEnabled(out, root.noColor))

	if flags.enhanced {
		bp, err := svc.GenerateEnhanced(ctx, input)
		if err != nil {
			return describeError(err)
		}
		if root.json {
			return writeJSON(out, bp)
		}
		renderRecommendation(out, st, bp.BlueprintID, bp.Mode, bp.Recommendation)
		if bp.AIAnalysis != nil {
			renderAnalysis(out, st, *bp.AIAnalysis, bp.Roadmap, bp.Confidence)
		}
		return nil
	}

	bp, err := svc.Generate(ctx, input)
	if err != nil {
		return describeError(err)
	}
	if root.json {
		return writeJSON(out, bp)
	}
	renderRecommendation(out, st, bp.BlueprintID, bp.Mode, bp.Recommendation)
	return nil
}

// newService wires the catalog and, when enhanced, the provider the same way the API does.
func newService(ctx context.Context, s Settings, enhanced bool) (*blueprints.Service, error) {
	cfg := s.AppConfig()
	store, err := bootstrap.BuildStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening catalog store: %w", err)
	}
	repo := &catalog.ObjectRepo{Store: store, Prefix: cfg.CatalogPrefix}

	var enhancer blueprints.Enhancer
	if enhanced {
		client, err := bootstrap.BuildLLM(cfg)
		if err != nil {
			return nil, err
		}
		if client != nil {
			enhancer = enhance.NewEnhancer(client, s.MaxStackSize)
		}
	}
	return blueprints.NewService(repo, enhancer, s.Options()), nil
}

// quietTelemetry sends service logs to stderr at warn level so stdout stays parseable.
func quietTelemetry(cmd *cobra.Command) func() {
	restore := telemetry.SetOutput(cmd.ErrOrStderr())
	telemetry.Configure("warn")
	return func() {
		telemetry.Configure("info")
		restore()
	}
}

func describeError(err error) error {
	var verr *blueprints.ValidationError
	if errors.As(err, &verr) {
		parts := make([]string, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			parts = append(parts, f.Field+": "+f.Issue)
		}
		return fmt.Errorf("invalid input: %s", strings.Join(parts, "; "))
	}
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderRecommendation(w io.Writer, st styles, id, mode string, rec engine.Recommendation) {
	fmt.Fprintln(w, st.header.Render("Recommended stack"))
	fmt.Fprintf(w, "%s %s  %s %s\n", st.muted.Render("blueprint"), id, st.muted.Render("mode"), mode)
	fmt.Fprintln(w, rec.Summary)
	fmt.Fprintln(w)

	stack := newTable(st, "CATEGORY", "TOOL", "SCORE", "REASON")
	for _, e := range rec.RecommendedStack {
		stack.addRow(e.Category, e.Name, fmt.Sprintf("%.2f", e.CompatibilityScore), truncate(e.Reason, 60))
	}
	fmt.Fprint(w, stack.render())

	if len(rec.Warnings) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, st.header.Render("Warnings"))
		for _, warn := range rec.Warnings {
			fmt.Fprintf(w, "  %s %s\n", st.warning.Render("["+warn.Type+"]"), warn.Message)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, st.header.Render("Monthly cost"))
	costs := newTable(st, "TOOL", "TYPE", "MIN", "MAX", "ESTIMATE", "NOTES")
	for _, b := range rec.CostProjection.Breakdown {
		costs.addRow(b.ToolName, b.CostType, money(b.MonthlyMin), money(b.MonthlyMax), money(b.MonthlyEstimate), b.Notes)
	}
	fmt.Fprint(w, costs.render())
	p := rec.CostProjection
	fmt.Fprintf(w, "%s %s - %s (estimate %s, scaling x%.2f, %s confidence)\n",
		st.bold.Render("Total"),
		money(p.TotalMonthlyMin), money(p.TotalMonthlyMax), st.success.Render(money(p.TotalMonthlyEstimate)),
		p.ScalingFactor, p.Confidence)
}

func renderAnalysis(w io.Writer, st styles, a enhance.AIAnalysis, roadmap []enhance.RoadmapPhase, confidence *float64) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, st.header.Render("AI analysis"))
	if confidence != nil {
		fmt.Fprintf(w, "%s %.2f  %s %s\n", st.muted.Render("confidence"), *confidence, st.muted.Render("context"), a.ContextSource)
	}
	if a.Reasoning != "" {
		fmt.Fprintln(w, a.Reasoning)
	}
	for _, r := range a.Risks {
		fmt.Fprintf(w, "  %s %s\n", st.warning.Render("risk"), r)
	}
	if len(roadmap) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, st.header.Render("Roadmap"))
		for _, phase := range roadmap {
			fmt.Fprintf(w, "  %s (%s)\n", st.bold.Render(phase.Phase), phase.Duration)
			for _, task := range phase.Tasks {
				fmt.Fprintf(w, "    - %s\n", task)
			}
		}
	}
}
