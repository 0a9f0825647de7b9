// Package seo generates SEO metadata (title candidates, description, tags,
// thumbnail text) for a finished script.
package seo

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/content-scout/internal/llm"
	"github.com/jonathan/content-scout/internal/prompts"
	"github.com/jonathan/content-scout/internal/types"
)

// maxScriptExcerpt bounds how much of the script feeds the SEO prompt.
const maxScriptExcerpt = 4000

// Generator produces SEO metadata from a topic and its source script.
type Generator struct {
	llm llm.Client
}

// NewGenerator creates a Generator backed by an LLM client.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{llm: client}
}

// Generate produces an SEO package for a topic, grounded on one of its
// script variants.
func (g *Generator) Generate(ctx context.Context, topic string, script *types.ScriptVariant, findings *types.ResearchFindings) (*types.SeoPackage, error) {
	if script == nil || strings.TrimSpace(script.Body) == "" {
		return nil, fmt.Errorf("a source script is required for SEO generation")
	}

	template := prompts.MustGet("seo.json", "optimize-metadata")
	prompt := prompts.Format(template, map[string]string{
		"Topic":     topic,
		"Script":    scriptExcerpt(script.Body),
		"Trends":    strings.Join(trendsOf(findings), "; "),
		"Questions": strings.Join(questionsOf(findings), "; "),
	})

	response, err := g.llm.GenerateJSON(ctx, prompt, llm.TierFast)
	if err != nil {
		return nil, fmt.Errorf("SEO generation failed: %w", err)
	}

	pkg, err := parseSeoPackage(response)
	if err != nil {
		return nil, err
	}
	return pkg, nil
}

// parseSeoPackage decodes and bounds-checks the SEO response JSON.
func parseSeoPackage(jsonText string) (*types.SeoPackage, error) {
	var pkg types.SeoPackage
	if err := json.Unmarshal([]byte(jsonText), &pkg); err != nil {
		return nil, fmt.Errorf("failed to parse SEO metadata: %w", err)
	}
	if len(pkg.Titles) == 0 {
		return nil, fmt.Errorf("SEO metadata missing title candidates")
	}
	if pkg.Description == "" {
		return nil, fmt.Errorf("SEO metadata missing description")
	}
	pkg.Clamp()
	return &pkg, nil
}

// scriptExcerpt truncates a script body for prompt context.
func scriptExcerpt(body string) string {
	if len(body) > maxScriptExcerpt {
		return body[:maxScriptExcerpt]
	}
	return body
}

func trendsOf(findings *types.ResearchFindings) []string {
	if findings == nil {
		return nil
	}
	return findings.Trends
}

func questionsOf(findings *types.ResearchFindings) []string {
	if findings == nil {
		return nil
	}
	return findings.Questions
}
