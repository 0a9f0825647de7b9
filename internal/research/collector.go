// Package research collects web research findings for a topic: trend
// statements, subtopics, common questions, and a content-gap summary.
// Discovery uses Google Custom Search; synthesis uses the LLM.
package research

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"

	"github.com/jonathan/content-scout/internal/llm"
	"github.com/jonathan/content-scout/internal/prompts"
	"github.com/jonathan/content-scout/internal/types"
)

// resultsPerQuery is how many search results each query contributes.
const resultsPerQuery = 5

// maxSummaryResults caps how many results feed the analysis prompt.
const maxSummaryResults = 10

// Collector gathers web research for a topic.
type Collector struct {
	search     *customsearch.Service
	cx         string
	llm        llm.Client
	enrichment *PageFetcher // optional page-text enrichment
}

// NewCollector creates a Collector. The search API key and engine ID (cx)
// are required; pass a nil fetcher to disable page enrichment.
func NewCollector(ctx context.Context, searchAPIKey, cx string, client llm.Client, fetcher *PageFetcher) (*Collector, error) {
	if searchAPIKey == "" || cx == "" {
		return nil, fmt.Errorf("search API key and engine ID are required")
	}
	svc, err := customsearch.NewService(ctx, option.WithAPIKey(searchAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &Collector{
		search:     svc,
		cx:         cx,
		llm:        client,
		enrichment: fetcher,
	}, nil
}

// searchResult is one normalized web search hit.
type searchResult struct {
	Title   string
	Snippet string
	Link    string
}

// Collect runs the research queries for a topic, optionally enriches the
// results with fetched page text, and synthesizes structured findings.
func (c *Collector) Collect(ctx context.Context, topic string) (*types.ResearchFindings, error) {
	results, err := c.runQueries(ctx, topic)
	if err != nil {
		return nil, err
	}

	summary := buildSearchSummary(results)
	if c.enrichment != nil {
		summary += c.enrichment.EnrichResults(ctx, results)
	}

	template := prompts.MustGet("research.json", "analyze-findings")
	prompt := prompts.Format(template, map[string]string{
		"Topic":         topic,
		"SearchSummary": summary,
	})

	response, err := c.llm.GenerateJSON(ctx, prompt, llm.TierAnalysis)
	if err != nil {
		return nil, fmt.Errorf("research analysis failed: %w", err)
	}

	findings, err := parseFindings(response)
	if err != nil {
		return nil, err
	}
	return findings, nil
}

// GapSummary produces the content-gap summary from findings and the
// competitive analysis text.
func (c *Collector) GapSummary(ctx context.Context, topic string, findings *types.ResearchFindings, competitionSummary string) (string, error) {
	template := prompts.MustGet("research.json", "gap-summary")
	prompt := prompts.Format(template, map[string]string{
		"Topic":              topic,
		"CompetitionSummary": competitionSummary,
		"Trends":             strings.Join(findings.Trends, "; "),
		"Subtopics":          strings.Join(findings.Subtopics, "; "),
		"Questions":          strings.Join(findings.Questions, "; "),
	})

	summary, err := c.llm.GenerateContent(ctx, prompt, llm.TierAnalysis)
	if err != nil {
		return "", fmt.Errorf("gap analysis failed: %w", err)
	}
	return strings.TrimSpace(summary), nil
}

// runQueries executes all research queries, tolerating individual query
// failures as long as at least one succeeds.
func (c *Collector) runQueries(ctx context.Context, topic string) ([]searchResult, error) {
	var results []searchResult
	var lastErr error

	for _, query := range searchQueries(topic) {
		resp, err := c.search.Cse.List().
			Cx(c.cx).
			Q(query).
			Num(resultsPerQuery).
			Context(ctx).
			Do()
		if err != nil {
			lastErr = err
			continue
		}
		for _, item := range resp.Items {
			results = append(results, searchResult{
				Title:   item.Title,
				Snippet: item.Snippet,
				Link:    item.Link,
			})
		}
	}

	if len(results) == 0 {
		if lastErr != nil {
			return nil, fmt.Errorf("all research queries failed: %w", lastErr)
		}
		return nil, fmt.Errorf("no search results found for topic")
	}
	return results, nil
}

// searchQueries returns the query set used to research a topic.
func searchQueries(topic string) []string {
	return []string{
		topic + " trends 2026",
		topic + " tutorial popular",
		topic + " recent developments",
	}
}

// buildSearchSummary renders search results as numbered plain text for the
// analysis prompt.
func buildSearchSummary(results []searchResult) string {
	capped := results
	if len(capped) > maxSummaryResults {
		capped = capped[:maxSummaryResults]
	}

	var sb strings.Builder
	sb.WriteString("WEB SEARCH FINDINGS:\n\n")
	for i, r := range capped {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, r.Title)
		if r.Snippet != "" {
			fmt.Fprintf(&sb, "   %s\n", r.Snippet)
		}
		fmt.Fprintf(&sb, "   Source: %s\n\n", r.Link)
	}
	return sb.String()
}

// parseFindings decodes the analysis JSON into ResearchFindings.
func parseFindings(jsonText string) (*types.ResearchFindings, error) {
	var decoded struct {
		Trends    []string `json:"trends"`
		Subtopics []string `json:"subtopics"`
		Questions []string `json:"questions"`
	}
	if err := json.Unmarshal([]byte(jsonText), &decoded); err != nil {
		return nil, fmt.Errorf("failed to parse research findings: %w", err)
	}
	return &types.ResearchFindings{
		Trends:    decoded.Trends,
		Subtopics: decoded.Subtopics,
		Questions: decoded.Questions,
	}, nil
}
