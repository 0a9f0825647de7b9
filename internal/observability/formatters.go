// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/content-scout/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintScore outputs the opportunity score breakdown.
func (p *Printer) PrintScore(topic string, score *types.OpportunityScore) {
	if score == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Topic:     %s\n", topic))
	sb.WriteString(fmt.Sprintf("Aggregate: %.0f/100 (%s)\n\n", score.Aggregate, score.Tier))
	sb.WriteString(fmt.Sprintf("Demand:      %.0f\n", score.Demand))
	sb.WriteString(fmt.Sprintf("Competition: %.0f\n", score.Competition))
	sb.WriteString(fmt.Sprintf("Engagement:  %.0f\n", score.Engagement))
	sb.WriteString(fmt.Sprintf("Trend:       %.0f\n", score.Trend))
	if score.Metrics.VideosAnalyzed > 0 {
		sb.WriteString(fmt.Sprintf("\nVideos analyzed: %d\n", score.Metrics.VideosAnalyzed))
		sb.WriteString(fmt.Sprintf("Average views:   %.0f", score.Metrics.AverageViews))
	}

	p.printBox("OPPORTUNITY SCORE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSnapshot outputs the top competing videos.
func (p *Printer) PrintSnapshot(snapshot *types.Snapshot) {
	if snapshot.Empty() {
		if snapshot != nil && snapshot.Degraded {
			p.printBox("COMPETITIVE SNAPSHOT", "⚠ metrics unavailable (degraded)")
		}
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Videos found: %d\n\n", len(snapshot.Items)))

	count := min(len(snapshot.Items), maxItemsToShow)
	for i := 0; i < count; i++ {
		v := snapshot.Items[i]
		title := v.Title
		if len(title) > 45 {
			title = title[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, title))
		sb.WriteString(fmt.Sprintf("    %d views, %.2f%% engagement\n", v.Views, v.EngagementRate()))
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(snapshot.Items) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more videos", len(snapshot.Items)-maxItemsToShow))
	}

	p.printBox("COMPETITIVE SNAPSHOT", sb.String())
}

// PrintFindings outputs the research findings summary.
func (p *Printer) PrintFindings(findings *types.ResearchFindings) {
	if findings.Empty() {
		if findings != nil && findings.Degraded {
			p.printBox("RESEARCH FINDINGS", "⚠ research unavailable (degraded)")
		}
		return
	}

	var sb strings.Builder
	writeSection := func(heading string, items []string) {
		if len(items) == 0 {
			return
		}
		sb.WriteString(heading + ":\n")
		count := min(len(items), 3)
		for i := 0; i < count; i++ {
			item := items[i]
			if len(item) > 50 {
				item = item[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  • %s\n", item))
		}
		if len(items) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-3))
		}
		sb.WriteString("\n")
	}

	writeSection("Trends", findings.Trends)
	writeSection("Subtopics", findings.Subtopics)
	writeSection("Questions", findings.Questions)

	if findings.GapSummary != "" {
		gap := findings.GapSummary
		if len(gap) > 100 {
			gap = gap[:97] + "..."
		}
		sb.WriteString("Gap: " + gap)
	}

	p.printBox("RESEARCH FINDINGS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSeo outputs the generated SEO metadata.
func (p *Printer) PrintSeo(seo *types.SeoPackage) {
	if seo == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString("Title candidates:\n")
	for i, title := range seo.Titles {
		if len(title) > 48 {
			title = title[:45] + "..."
		}
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, title))
	}
	sb.WriteString(fmt.Sprintf("\nTags: %d", len(seo.Tags)))
	if seo.ThumbnailText != "" {
		sb.WriteString(fmt.Sprintf("\nThumbnail: %s", seo.ThumbnailText))
	}

	p.printBox("SEO METADATA", sb.String())
}

// PrintFailures outputs degraded steps for a run.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintFailures(failures []types.StepFailure) {
	if len(failures) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ ALL STEPS SUCCEEDED")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Found %d degraded steps:\n\n", len(failures)))

	for i, f := range failures {
		reason := f.Reason
		if len(reason) > 45 {
			reason = reason[:42] + "..."
		}
		if f.Tone != "" {
			sb.WriteString(fmt.Sprintf("⚠ %s (%s)\n", f.Step, f.Tone))
		} else {
			sb.WriteString(fmt.Sprintf("⚠ %s\n", f.Step))
		}
		sb.WriteString(fmt.Sprintf("  %s\n", reason))
		if i < len(failures)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("DEGRADED STEPS", sb.String())
}
