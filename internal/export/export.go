// Package export writes a content package to disk: an opportunity report,
// per-tone scripts, SEO metadata, and schema-validated package metadata.
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonathan/content-scout/internal/metrics"
	"github.com/jonathan/content-scout/internal/schemas"
	"github.com/jonathan/content-scout/internal/types"
)

// Writer exports content packages under a base output directory.
type Writer struct {
	baseDir string
}

// NewWriter creates a Writer rooted at baseDir.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// Write exports the package into a timestamped run directory and returns
// the paths written. Metadata is validated against the package schema
// before anything is considered exported.
func (w *Writer) Write(pkg *types.ContentPackage) ([]string, error) {
	metadata, err := renderMetadata(pkg)
	if err != nil {
		return nil, err
	}
	if err := schemas.ValidateMetadata(metadata); err != nil {
		return nil, fmt.Errorf("package metadata failed schema validation: %w", err)
	}

	runDir := filepath.Join(w.baseDir, runDirName(pkg.Topic, pkg.CreatedAt))
	if err := os.MkdirAll(runDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	write := func(name, content string) error {
		path := filepath.Join(runDir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		written = append(written, path)
		return nil
	}

	slug := SanitizeTopic(pkg.Topic)

	if err := write("report.md", renderReport(pkg)); err != nil {
		return nil, err
	}
	for _, variant := range pkg.Variants {
		name := fmt.Sprintf("%s_%s.txt", slug, variant.Tone)
		if err := write(name, renderScript(pkg.Topic, &variant)); err != nil {
			return nil, err
		}
	}
	if pkg.Comparison != "" {
		if err := write(slug+"_comparison.txt", pkg.Comparison+"\n"); err != nil {
			return nil, err
		}
	}
	if pkg.Seo != nil {
		if err := write(slug+"_SEO.txt", renderSeo(pkg.Seo)); err != nil {
			return nil, err
		}
	}
	if err := write("metadata.json", metadata); err != nil {
		return nil, err
	}

	return written, nil
}

// SanitizeTopic converts a topic into a filename-safe slug.
func SanitizeTopic(topic string) string {
	var sb strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(strings.TrimSpace(topic)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastUnderscore = false
		case r == ' ' || r == '-' || r == '_':
			if !lastUnderscore {
				sb.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	slug := strings.Trim(sb.String(), "_")
	if slug == "" {
		return "topic"
	}
	return slug
}

// runDirName builds the timestamped run directory name.
func runDirName(topic string, createdAt time.Time) string {
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	return SanitizeTopic(topic) + "_" + createdAt.UTC().Format("20060102_150405")
}

// renderMetadata encodes the exportable package metadata as indented JSON.
func renderMetadata(pkg *types.ContentPackage) (string, error) {
	meta := struct {
		Topic         string                  `json:"topic"`
		CreatedAt     time.Time               `json:"created_at"`
		Status        types.Status            `json:"status"`
		Settings      types.Options           `json:"settings"`
		Score         *types.OpportunityScore `json:"score,omitempty"`
		Failures      []types.StepFailure     `json:"failures"`
		SeoSkipReason string                  `json:"seo_skip_reason,omitempty"`
	}{
		Topic:         pkg.Topic,
		CreatedAt:     pkg.CreatedAt,
		Status:        pkg.Status,
		Settings:      pkg.Settings,
		Score:         pkg.Score,
		Failures:      pkg.Failures,
		SeoSkipReason: pkg.SeoSkipReason,
	}
	if meta.Failures == nil {
		meta.Failures = []types.StepFailure{}
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode metadata: %w", err)
	}
	return string(data) + "\n", nil
}

// renderReport builds the markdown opportunity report.
func renderReport(pkg *types.ContentPackage) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# Content Opportunity Report: %s\n\n", pkg.Topic)
	fmt.Fprintf(&sb, "Generated: %s\n", pkg.CreatedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&sb, "Status: %s\n\n", pkg.Status)

	if pkg.Score != nil {
		sb.WriteString("## Opportunity Score\n\n")
		fmt.Fprintf(&sb, "**%.0f/100 — %s**\n\n", pkg.Score.Aggregate, pkg.Score.Tier)
		fmt.Fprintf(&sb, "| Component | Score |\n|---|---|\n")
		fmt.Fprintf(&sb, "| Demand | %.0f |\n", pkg.Score.Demand)
		fmt.Fprintf(&sb, "| Competition | %.0f |\n", pkg.Score.Competition)
		fmt.Fprintf(&sb, "| Engagement | %.0f |\n", pkg.Score.Engagement)
		fmt.Fprintf(&sb, "| Trend | %.0f |\n\n", pkg.Score.Trend)
	}

	if pkg.Snapshot != nil {
		sb.WriteString("## Competitive Landscape\n\n")
		sb.WriteString(metrics.SnapshotSummary(pkg.Topic, pkg.Snapshot))
		sb.WriteString("\n")
	}

	if !pkg.Findings.Empty() {
		sb.WriteString("## Research Findings\n\n")
		writeBulletList(&sb, "Trends", pkg.Findings.Trends)
		writeBulletList(&sb, "Subtopics", pkg.Findings.Subtopics)
		writeBulletList(&sb, "Audience questions", pkg.Findings.Questions)
		if pkg.Findings.GapSummary != "" {
			sb.WriteString("### Content Gap\n\n")
			sb.WriteString(pkg.Findings.GapSummary + "\n\n")
		}
	}

	if len(pkg.Variants) > 0 {
		sb.WriteString("## Generated Scripts\n\n")
		for _, v := range pkg.Variants {
			fmt.Fprintf(&sb, "- %s (%s)\n", v.Tone, v.TargetLength)
		}
		sb.WriteString("\n")
	}

	if len(pkg.Failures) > 0 {
		sb.WriteString("## Degraded Steps\n\n")
		for _, f := range pkg.Failures {
			if f.Tone != "" {
				fmt.Fprintf(&sb, "- %s (%s): %s\n", f.Step, f.Tone, f.Reason)
			} else {
				fmt.Fprintf(&sb, "- %s: %s\n", f.Step, f.Reason)
			}
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeBulletList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "### %s\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(sb, "- %s\n", item)
	}
	sb.WriteString("\n")
}

// renderScript renders one script variant as a text file.
func renderScript(topic string, v *types.ScriptVariant) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "TOPIC: %s\nTONE: %s\nTARGET LENGTH: %s\n\n", topic, v.Tone, v.TargetLength)
	sb.WriteString(v.Body)
	sb.WriteString("\n")
	return sb.String()
}

// renderSeo renders the SEO package as a text file.
func renderSeo(seo *types.SeoPackage) string {
	var sb strings.Builder
	sb.WriteString("TITLE CANDIDATES:\n")
	for i, title := range seo.Titles {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, title)
	}
	sb.WriteString("\nDESCRIPTION:\n")
	sb.WriteString(seo.Description + "\n")
	sb.WriteString("\nTAGS:\n")
	sb.WriteString(strings.Join(seo.Tags, ", ") + "\n")
	if seo.ThumbnailText != "" {
		sb.WriteString("\nTHUMBNAIL TEXT:\n")
		sb.WriteString(seo.ThumbnailText + "\n")
	}
	return sb.String()
}
