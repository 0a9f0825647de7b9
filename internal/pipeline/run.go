// Package pipeline provides the high-level orchestration for content
// package generation: metrics, research, scoring, scripts, SEO, and export.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/content-scout/internal/costs"
	"github.com/jonathan/content-scout/internal/db"
	"github.com/jonathan/content-scout/internal/metrics"
	"github.com/jonathan/content-scout/internal/observability"
	"github.com/jonathan/content-scout/internal/pipeline/steps"
	"github.com/jonathan/content-scout/internal/scoring"
	"github.com/jonathan/content-scout/internal/types"
)

// DefaultStepTimeout bounds each collaborator call when the caller does not
// set one.
const DefaultStepTimeout = 90 * time.Second

// MetricsFetcher fetches the competitive video snapshot for a topic.
type MetricsFetcher interface {
	Fetch(ctx context.Context, topic string) (*types.Snapshot, error)
}

// ResearchCollector gathers web research findings for a topic.
type ResearchCollector interface {
	Collect(ctx context.Context, topic string) (*types.ResearchFindings, error)
	GapSummary(ctx context.Context, topic string, findings *types.ResearchFindings, competitionSummary string) (string, error)
}

// ScriptGenerator writes tone-variant scripts and compares them.
type ScriptGenerator interface {
	Generate(ctx context.Context, topic string, tone types.Tone, length string, score *types.OpportunityScore, findings *types.ResearchFindings) (*types.ScriptVariant, error)
	CompareVariations(ctx context.Context, topic string, variants []types.ScriptVariant) (string, error)
}

// SeoGenerator produces SEO metadata from a finished script.
type SeoGenerator interface {
	Generate(ctx context.Context, topic string, script *types.ScriptVariant, findings *types.ResearchFindings) (*types.SeoPackage, error)
}

// Exporter writes the assembled package to storage.
type Exporter interface {
	Write(pkg *types.ContentPackage) ([]string, error)
}

// Collaborators holds every injected dependency of a pipeline run. Metrics,
// Research, Scripts, and Seo are required for their steps to run; a nil
// collaborator degrades its step. Database and Costs are optional.
type Collaborators struct {
	Metrics  MetricsFetcher
	Research ResearchCollector
	Scripts  ScriptGenerator
	Seo      SeoGenerator
	Exporter Exporter
	Database *db.DB
	Costs    *costs.Tracker
}

// RunOptions holds configuration for running the pipeline.
type RunOptions struct {
	Topic       string
	Options     types.Options
	Weights     scoring.Weights
	StepTimeout time.Duration
	Verbose     bool
}

// Run orchestrates a full content generation run. The returned package is
// always non-nil for COMPLETE and PARTIAL runs; a FAILED run returns an
// AssemblyError. Validation failures return an InvalidInputError before any
// collaborator is called. When ctx carries a run-level budget and it expires
// mid-run, the remaining steps are recorded as failures and whatever is
// already in hand is assembled instead of discarded.
func Run(ctx context.Context, collabs Collaborators, opts RunOptions) (*types.ContentPackage, error) {
	if err := validateRun(&opts); err != nil {
		return nil, err
	}

	printer := observability.NewPrinter(os.Stdout)
	stepTimeout := opts.StepTimeout
	if stepTimeout <= 0 {
		stepTimeout = DefaultStepTimeout
	}

	var failures []types.StepFailure
	var failuresMu sync.Mutex
	recordFailure := func(step string, tone types.Tone, err error) {
		failuresMu.Lock()
		defer failuresMu.Unlock()
		failures = append(failures, types.StepFailure{Step: step, Tone: tone, Reason: err.Error()})
	}

	// Optional persistence. Connection problems never stop a run.
	var database *db.DB
	var runID uuid.UUID
	if collabs.Database != nil {
		database = collabs.Database
		var err error
		runID, err = database.CreateRun(ctx, opts.Topic, string(opts.Options.Tone))
		if err != nil {
			fmt.Printf("Warning: Failed to create database run: %v\n", err)
			database = nil
		} else if opts.Verbose {
			fmt.Printf("[VERBOSE] Created database run: %s\n", runID)
		}
	}

	// =========================================================================
	// PARALLEL EXECUTION: Metrics + Research
	// =========================================================================
	fmt.Printf("Step 1-2/6: Fetching metrics and research in parallel...\n")

	var snapshot *types.Snapshot
	var findings *types.ResearchFindings
	metricsFailed := false
	researchFailed := false

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if collabs.Metrics == nil {
			recordFailure(steps.FetchMetrics, "", fmt.Errorf("metrics fetcher not configured"))
			metricsFailed = true
			return nil
		}
		result, err := fetchWithTimeout(gCtx, stepTimeout, func(callCtx context.Context) (*types.Snapshot, error) {
			return collabs.Metrics.Fetch(callCtx, opts.Topic)
		})
		if err != nil {
			recordFailure(steps.FetchMetrics, "", classify(steps.FetchMetrics, err))
			metricsFailed = true
			return nil
		}
		snapshot = result
		return nil
	})

	g.Go(func() error {
		if collabs.Research == nil {
			recordFailure(steps.CollectResearch, "", fmt.Errorf("research collector not configured"))
			researchFailed = true
			return nil
		}
		result, err := fetchWithTimeout(gCtx, stepTimeout, func(callCtx context.Context) (*types.ResearchFindings, error) {
			return collabs.Research.Collect(callCtx, opts.Topic)
		})
		if err != nil {
			recordFailure(steps.CollectResearch, "", classify(steps.CollectResearch, err))
			researchFailed = true
			return nil
		}
		findings = result
		return nil
	})

	// Branches record failures instead of returning them, so Wait cannot
	// fail. A spent run budget does not abort either: the remaining steps
	// fail fast against the expired context below, and whatever is already
	// in hand is still assembled.
	_ = g.Wait()

	if snapshot == nil {
		snapshot = types.DegradedSnapshot()
	}
	if findings == nil {
		findings = types.DegradedFindings()
	}
	if !researchFailed && collabs.Research != nil {
		logCost(collabs.Costs, "research", 1000, 500)
	}

	if opts.Verbose {
		printer.PrintSnapshot(snapshot)
		printer.PrintFindings(findings)
	}
	saveArtifact(ctx, database, runID, db.StepSnapshot, steps.CategoryMetrics, snapshot)
	saveArtifact(ctx, database, runID, db.StepFindings, steps.CategoryResearch, findings)

	// Content gap analysis enriches the findings when research succeeded.
	if !researchFailed && collabs.Research != nil && ctx.Err() == nil {
		gapCtx, cancel := context.WithTimeout(ctx, stepTimeout)
		gap, err := collabs.Research.GapSummary(gapCtx, opts.Topic, findings, metrics.SnapshotSummary(opts.Topic, snapshot))
		cancel()
		if err != nil {
			fmt.Printf("Warning: Content gap analysis failed: %v\n", err)
		} else {
			findings.GapSummary = gap
			logCost(collabs.Costs, "gap_analysis", 1200, 300)
		}
	}

	// =========================================================================
	// Step 3: Score (always runs, pure)
	// =========================================================================
	fmt.Printf("Step 3/6: Scoring opportunity...\n")
	scored := scoring.Score(snapshot, findings, opts.Weights)
	score := &scored
	if opts.Verbose {
		printer.PrintScore(opts.Topic, score)
	}
	saveArtifact(ctx, database, runID, db.StepScore, steps.CategoryScoring, score)

	// =========================================================================
	// Step 4: Script fan-out per requested tone
	// =========================================================================
	tones := opts.Options.RequestedTones()
	fmt.Printf("Step 4/6: Generating %d script variant(s)...\n", len(tones))

	variants := make([]*types.ScriptVariant, len(tones))
	if err := ctx.Err(); err != nil {
		for _, tone := range tones {
			recordFailure(steps.GenerateScript, tone, classify(steps.GenerateScript, err))
		}
	} else {
		sg, sgCtx := errgroup.WithContext(ctx)
		for i, tone := range tones {
			sg.Go(func() error {
				if collabs.Scripts == nil {
					recordFailure(steps.GenerateScript, tone, fmt.Errorf("script generator not configured"))
					return nil
				}
				variant, err := fetchWithTimeout(sgCtx, stepTimeout, func(callCtx context.Context) (*types.ScriptVariant, error) {
					return collabs.Scripts.Generate(callCtx, opts.Topic, tone, opts.Options.Length, score, findings)
				})
				if err != nil {
					recordFailure(steps.GenerateScript, tone, classify(steps.GenerateScript, err))
					return nil
				}
				variants[i] = variant
				logCost(collabs.Costs, "script", 2000, 1500)
				return nil
			})
		}
		_ = sg.Wait()
	}

	var generated []types.ScriptVariant
	for _, v := range variants {
		if v != nil {
			generated = append(generated, *v)
		}
	}
	for i := range generated {
		if database != nil && runID != uuid.Nil {
			_ = database.SaveScript(ctx, runID, &generated[i])
		}
	}

	// Variant comparison when more than one tone succeeded.
	comparison := ""
	if len(generated) >= 2 && collabs.Scripts != nil && ctx.Err() == nil {
		cmpCtx, cancel := context.WithTimeout(ctx, stepTimeout)
		result, err := collabs.Scripts.CompareVariations(cmpCtx, opts.Topic, generated)
		cancel()
		if err != nil {
			fmt.Printf("Warning: Variant comparison failed: %v\n", err)
		} else {
			comparison = result
			logCost(collabs.Costs, "comparison", 3000, 500)
			saveText(ctx, database, runID, db.StepComparison, steps.CategoryGeneration, comparison)
		}
	}

	// =========================================================================
	// Step 5: SEO (gated on the toggle and at least one script)
	// =========================================================================
	var seoPkg *types.SeoPackage
	seoSkipReason := ""
	switch {
	case !opts.Options.IncludeSEO:
		fmt.Printf("Step 5/6: SEO generation disabled, skipping.\n")
		seoSkipReason = "seo disabled by options"
	case len(generated) == 0:
		fmt.Printf("Step 5/6: No script variants available, skipping SEO.\n")
		seoSkipReason = "no script variants available"
	case ctx.Err() != nil:
		recordFailure(steps.GenerateSeo, "", classify(steps.GenerateSeo, ctx.Err()))
	case collabs.Seo == nil:
		recordFailure(steps.GenerateSeo, "", fmt.Errorf("seo generator not configured"))
	default:
		fmt.Printf("Step 5/6: Generating SEO metadata...\n")
		source := seoSourceScript(generated)
		result, err := fetchWithTimeout(ctx, stepTimeout, func(callCtx context.Context) (*types.SeoPackage, error) {
			return collabs.Seo.Generate(callCtx, opts.Topic, source, findings)
		})
		if err != nil {
			recordFailure(steps.GenerateSeo, "", classify(steps.GenerateSeo, err))
		} else {
			seoPkg = result
			logCost(collabs.Costs, "seo", 800, 400)
			if opts.Verbose {
				printer.PrintSeo(seoPkg)
			}
			saveArtifact(ctx, database, runID, db.StepSeo, steps.CategoryGeneration, seoPkg)
		}
	}

	// =========================================================================
	// Step 6: Assemble and export
	// =========================================================================
	fmt.Printf("Step 6/6: Assembling content package...\n")

	allScriptsFailed := len(generated) == 0
	if metricsFailed && researchFailed && allScriptsFailed {
		if database != nil && runID != uuid.Nil {
			_ = database.CompleteRun(ctx, runID, string(types.StatusFailed))
		}
		return nil, &AssemblyError{Topic: opts.Topic, Failures: failures}
	}

	pkg := &types.ContentPackage{
		Topic:         opts.Topic,
		CreatedAt:     time.Now().UTC(),
		Settings:      opts.Options,
		Score:         score,
		Snapshot:      snapshot,
		Findings:      findings,
		Variants:      generated,
		Comparison:    comparison,
		Seo:           seoPkg,
		SeoSkipReason: seoSkipReason,
	}

	if collabs.Exporter != nil {
		written, err := collabs.Exporter.Write(pkg)
		if err != nil {
			recordFailure(steps.Export, "", classify(steps.Export, err))
		} else if opts.Verbose {
			fmt.Printf("[VERBOSE] Exported %d artifacts\n", len(written))
		}
	}

	pkg.Failures = failures
	if len(failures) == 0 {
		pkg.Status = types.StatusComplete
	} else {
		pkg.Status = types.StatusPartial
	}

	if opts.Verbose {
		printer.PrintFailures(failures)
	}
	saveArtifact(ctx, database, runID, db.StepPackage, steps.CategoryOutput, pkg)
	if database != nil && runID != uuid.Nil {
		_ = database.CompleteRun(ctx, runID, string(pkg.Status))
	}

	return pkg, nil
}

// validateRun applies the fail-fast input checks.
func validateRun(opts *RunOptions) error {
	if err := types.ValidateTopic(opts.Topic); err != nil {
		return &InvalidInputError{Field: "topic", Message: err.Error()}
	}
	if err := opts.Options.Validate(); err != nil {
		return &InvalidInputError{Field: "options", Message: "run options failed validation", Cause: err}
	}
	if opts.Weights == (scoring.Weights{}) {
		opts.Weights = scoring.DefaultWeights()
	}
	if err := opts.Weights.Validate(); err != nil {
		return &InvalidInputError{Field: "weights", Message: "score weights failed validation", Cause: err}
	}
	return nil
}

// fetchWithTimeout runs one collaborator call under the per-step deadline.
func fetchWithTimeout[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) (T, error)) (T, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return fn(callCtx)
}

// classify wraps a collaborator error with its failure kind.
func classify(step string, err error) error {
	kind := KindUnavailable
	if errors.Is(err, context.DeadlineExceeded) {
		kind = KindTimeout
	}
	return &CollaboratorError{Step: step, Kind: kind, Cause: err}
}

// seoSourceScript picks the variant SEO metadata is grounded on:
// entertaining reads best in titles, then educational, then whatever exists.
func seoSourceScript(variants []types.ScriptVariant) *types.ScriptVariant {
	for _, tone := range []types.Tone{types.ToneEntertaining, types.ToneEducational} {
		for i := range variants {
			if variants[i].Tone == tone {
				return &variants[i]
			}
		}
	}
	return &variants[0]
}

func logCost(tracker *costs.Tracker, op string, tokensIn, tokensOut int) {
	if tracker == nil {
		return
	}
	tracker.LogOperation(op, "gemini-2.0-flash", tokensIn, tokensOut)
}

func saveArtifact(ctx context.Context, database *db.DB, runID uuid.UUID, step, category string, content any) {
	if database == nil || runID == uuid.Nil {
		return
	}
	_ = database.SaveArtifact(ctx, runID, step, category, content)
}

func saveText(ctx context.Context, database *db.DB, runID uuid.UUID, step, category, text string) {
	if database == nil || runID == uuid.Nil {
		return
	}
	_ = database.SaveTextArtifact(ctx, runID, step, category, text)
}
