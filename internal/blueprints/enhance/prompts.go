package enhance

import (
	_ "embed"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"stackfast/internal/blueprints/engine"
	"stackfast/internal/catalog"
)

var (
	//go:embed prompts/context.txt
	contextPromptTemplate string
	//go:embed prompts/recommend.txt
	recommendPromptTemplate string
)

const (
	systemPromptContext   = "You are a software architect. Respond with JSON only. No markdown. Output must match the schema exactly."
	systemPromptRecommend = "You are a pragmatic software architect recommending technology stacks. Respond with JSON only. No markdown. Never omit keys."
)

// DefaultToolsPerCategory limits how many tools of one category appear in the catalog digest.
const DefaultToolsPerCategory = 8

func buildContextPrompt(projectIdea string) string {
	return strings.ReplaceAll(contextPromptTemplate, "{{PROJECT_IDEA}}", strings.TrimSpace(projectIdea))
}

func buildRecommendPrompt(ctxJSON string, skill engine.SkillProfile, preferred []string, digest string) string {
	pref := "none"
	if len(preferred) > 0 {
		pref = strings.Join(preferred, ", ")
	}
	r := strings.NewReplacer(
		"{{PROJECT_CONTEXT}}", ctxJSON,
		"{{SKILL_SETUP}}", strconv.Itoa(skill.Setup),
		"{{SKILL_DAILY}}", strconv.Itoa(skill.Daily),
		"{{PREFERRED_TOOLS}}", pref,
		"{{CATALOG_DIGEST}}", digest,
	)
	return r.Replace(recommendPromptTemplate)
}

// CatalogDigest renders the catalog as text grouped by category in first-seen order.
// Within a category the most popular tools come first, limited to perCategory entries.
func CatalogDigest(tools []catalog.ToolProfile, perCategory int) string {
	if perCategory <= 0 {
		perCategory = DefaultToolsPerCategory
	}
	groups := make(map[string][]catalog.ToolProfile)
	for _, t := range tools {
		groups[t.Category] = append(groups[t.Category], t)
	}

	var b strings.Builder
	for _, category := range catalog.Categories(tools) {
		group := groups[category]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].PopularityScore > group[j].PopularityScore
		})
		if len(group) > perCategory {
			group = group[:perCategory]
		}
		fmt.Fprintf(&b, "## %s\n", category)
		for _, t := range group {
			fmt.Fprintf(&b, "- %s: %s (setup %d/5, daily %d/5, %s, popularity %.2f)\n",
				t.ID, t.DisplayName(), t.Skills.Setup, t.Skills.Daily, pricingLabel(t), t.PopularityScore)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func pricingLabel(t catalog.ToolProfile) string {
	if p := t.NormalizedPricing(); p != "" {
		return p
	}
	if t.CostModel != nil {
		return strings.ToLower(t.CostModel.Type())
	}
	return "unknown pricing"
}
