// Package scripting generates tone-variant video scripts for a topic and
// compares the variants against each other.
package scripting

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/content-scout/internal/llm"
	"github.com/jonathan/content-scout/internal/prompts"
	"github.com/jonathan/content-scout/internal/types"
)

// Generator writes video scripts in a requested tone.
type Generator struct {
	llm llm.Client
}

// NewGenerator creates a Generator backed by an LLM client.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{llm: client}
}

// Generate writes one script variant for a topic in the given tone. The
// opportunity score and research findings ground the script; either may be
// absent when an upstream step degraded.
func (g *Generator) Generate(ctx context.Context, topic string, tone types.Tone, length string, score *types.OpportunityScore, findings *types.ResearchFindings) (*types.ScriptVariant, error) {
	prompt := buildScriptPrompt(topic, tone, length, score, findings)

	body, err := g.llm.GenerateContent(ctx, prompt, llm.TierCreative)
	if err != nil {
		return nil, fmt.Errorf("script generation failed for %s tone: %w", tone, err)
	}

	body = strings.TrimSpace(body)
	if body == "" {
		return nil, fmt.Errorf("empty script returned for %s tone", tone)
	}

	return &types.ScriptVariant{
		Tone:         tone,
		Body:         body,
		TargetLength: length,
	}, nil
}

// CompareVariations produces a comparison of multiple script variants:
// strengths, best use case, and a recommendation. Requires at least two
// variants.
func (g *Generator) CompareVariations(ctx context.Context, topic string, variants []types.ScriptVariant) (string, error) {
	if len(variants) < 2 {
		return "", fmt.Errorf("comparison requires at least 2 variants, got %d", len(variants))
	}

	template := prompts.MustGet("script.json", "compare-variations")
	prompt := prompts.Format(template, map[string]string{
		"Topic":    topic,
		"Variants": formatVariantsForComparison(variants),
	})

	comparison, err := g.llm.GenerateContent(ctx, prompt, llm.TierAnalysis)
	if err != nil {
		return "", fmt.Errorf("variation comparison failed: %w", err)
	}
	return strings.TrimSpace(comparison), nil
}

// buildScriptPrompt assembles the write-script prompt from topic context.
func buildScriptPrompt(topic string, tone types.Tone, length string, score *types.OpportunityScore, findings *types.ResearchFindings) string {
	template := prompts.MustGet("script.json", "write-script")
	return prompts.Format(template, map[string]string{
		"Topic":           topic,
		"Length":          length,
		"Tone":            string(tone),
		"ToneDescription": tone.Description(),
		"ScoreSummary":    formatScoreSummary(score),
		"Findings":        formatFindings(findings),
		"GapSummary":      gapSummaryOf(findings),
	})
}

// formatScoreSummary renders the opportunity score for prompt context.
// A nil score yields an explicit note.
func formatScoreSummary(score *types.OpportunityScore) string {
	if score == nil {
		return "Opportunity score unavailable."
	}
	return fmt.Sprintf(
		"Opportunity: %.0f/100 (%s tier). Demand %.0f, competition %.0f, engagement %.0f, trend %.0f.",
		score.Aggregate, score.Tier, score.Demand, score.Competition, score.Engagement, score.Trend)
}

// formatFindings renders research findings for prompt context.
func formatFindings(findings *types.ResearchFindings) string {
	if findings.Empty() {
		return "No research findings available."
	}

	var sb strings.Builder
	if len(findings.Trends) > 0 {
		sb.WriteString("Trends: " + strings.Join(findings.Trends, "; ") + "\n")
	}
	if len(findings.Subtopics) > 0 {
		sb.WriteString("Subtopics: " + strings.Join(findings.Subtopics, "; ") + "\n")
	}
	if len(findings.Questions) > 0 {
		sb.WriteString("Audience questions: " + strings.Join(findings.Questions, "; ") + "\n")
	}
	return strings.TrimSpace(sb.String())
}

func gapSummaryOf(findings *types.ResearchFindings) string {
	if findings == nil || findings.GapSummary == "" {
		return "No content gap analysis available."
	}
	return findings.GapSummary
}

// formatVariantsForComparison renders each variant with a tone header.
func formatVariantsForComparison(variants []types.ScriptVariant) string {
	var sb strings.Builder
	for i, v := range variants {
		fmt.Fprintf(&sb, "=== VARIANT %d: %s (%s) ===\n%s\n\n", i+1, strings.ToUpper(string(v.Tone)), v.TargetLength, v.Body)
	}
	return sb.String()
}
