package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/content-scout/internal/pipeline/steps"
	"github.com/jonathan/content-scout/internal/types"
)

type fakeMetrics struct {
	snapshot *types.Snapshot
	err      error
	delay    time.Duration
}

func (f *fakeMetrics) Fetch(ctx context.Context, _ string) (*types.Snapshot, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return f.snapshot, f.err
}

type fakeResearch struct {
	findings *types.ResearchFindings
	gap      string
	err      error
	gapErr   error
}

func (f *fakeResearch) Collect(_ context.Context, _ string) (*types.ResearchFindings, error) {
	return f.findings, f.err
}

func (f *fakeResearch) GapSummary(_ context.Context, _ string, _ *types.ResearchFindings, _ string) (string, error) {
	return f.gap, f.gapErr
}

type fakeScripts struct {
	failTones  map[types.Tone]error
	comparison string
	cmpErr     error
	delay      time.Duration
}

func (f *fakeScripts) Generate(ctx context.Context, topic string, tone types.Tone, length string, _ *types.OpportunityScore, _ *types.ResearchFindings) (*types.ScriptVariant, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err, ok := f.failTones[tone]; ok {
		return nil, err
	}
	return &types.ScriptVariant{Tone: tone, Body: "script for " + topic, TargetLength: length}, nil
}

func (f *fakeScripts) CompareVariations(_ context.Context, _ string, _ []types.ScriptVariant) (string, error) {
	return f.comparison, f.cmpErr
}

type fakeSeo struct {
	pkg *types.SeoPackage
	err error
}

func (f *fakeSeo) Generate(_ context.Context, _ string, _ *types.ScriptVariant, _ *types.ResearchFindings) (*types.SeoPackage, error) {
	return f.pkg, f.err
}

type fakeExporter struct {
	exported *types.ContentPackage
	err      error
}

func (f *fakeExporter) Write(pkg *types.ContentPackage) ([]string, error) {
	f.exported = pkg
	if f.err != nil {
		return nil, f.err
	}
	return []string{"report.md"}, nil
}

func healthySnapshot() *types.Snapshot {
	return &types.Snapshot{Items: []types.VideoStat{
		{Title: "big", Views: 2_000_000, Likes: 40_000, Comments: 4_000, PublishedAt: time.Now().Add(-300 * 24 * time.Hour)},
		{Title: "small", Views: 600_000, Likes: 9_000, Comments: 900, PublishedAt: time.Now().Add(-400 * 24 * time.Hour)},
	}}
}

func healthyFindings() *types.ResearchFindings {
	return &types.ResearchFindings{
		Trends:    []string{"t1", "t2", "t3"},
		Subtopics: []string{"s1"},
		Questions: []string{"q1"},
	}
}

func healthyCollabs() Collaborators {
	return Collaborators{
		Metrics:  &fakeMetrics{snapshot: healthySnapshot()},
		Research: &fakeResearch{findings: healthyFindings(), gap: "a gap"},
		Scripts:  &fakeScripts{comparison: "comparison text"},
		Seo: &fakeSeo{pkg: &types.SeoPackage{
			Titles:      []string{"a", "b", "c"},
			Description: "desc",
			Tags:        []string{"tag"},
		}},
	}
}

func defaultRunOptions() RunOptions {
	opts := types.DefaultOptions()
	return RunOptions{Topic: "home espresso", Options: opts}
}

func TestRun_AllStepsSucceed(t *testing.T) {
	result, err := Run(context.Background(), healthyCollabs(), defaultRunOptions())

	require.NoError(t, err)
	assert.Equal(t, types.StatusComplete, result.Status)
	assert.Empty(t, result.Failures)
	require.Len(t, result.Variants, 1)
	assert.Equal(t, types.ToneEducational, result.Variants[0].Tone)
	assert.NotNil(t, result.Score)
	assert.NotNil(t, result.Seo)
	assert.Equal(t, "a gap", result.Findings.GapSummary)
	assert.Empty(t, result.SeoSkipReason)
}

func TestRun_VariationsProduceAllTonesAndComparison(t *testing.T) {
	runOpts := defaultRunOptions()
	runOpts.Options.Variations = true

	result, err := Run(context.Background(), healthyCollabs(), runOpts)

	require.NoError(t, err)
	assert.Len(t, result.Variants, 3)
	assert.Equal(t, "comparison text", result.Comparison)
	assert.NotNil(t, result.Variant(types.ToneEntertaining))
}

func TestRun_InvalidTopic(t *testing.T) {
	runOpts := defaultRunOptions()
	runOpts.Topic = "  "

	_, err := Run(context.Background(), healthyCollabs(), runOpts)

	var invalidErr *InvalidInputError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, "topic", invalidErr.Field)
}

func TestRun_InvalidOptions(t *testing.T) {
	runOpts := defaultRunOptions()
	runOpts.Options.Length = "three hours"

	_, err := Run(context.Background(), healthyCollabs(), runOpts)

	var invalidErr *InvalidInputError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, "options", invalidErr.Field)
}

func TestRun_MetricsFailureDegradesToPartial(t *testing.T) {
	collabs := healthyCollabs()
	collabs.Metrics = &fakeMetrics{err: errors.New("quota exceeded")}

	result, err := Run(context.Background(), collabs, defaultRunOptions())

	require.NoError(t, err)
	assert.Equal(t, types.StatusPartial, result.Status)
	assert.True(t, result.Snapshot.Degraded)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, steps.FetchMetrics, result.Failures[0].Step)
	assert.Contains(t, result.Failures[0].Reason, "quota exceeded")
	// scoring still ran on the degraded snapshot
	assert.NotNil(t, result.Score)
	assert.InDelta(t, 50.0, result.Score.Demand, 0.01)
}

func TestRun_ResearchFailureDegradesToPartial(t *testing.T) {
	collabs := healthyCollabs()
	collabs.Research = &fakeResearch{err: errors.New("search down")}

	result, err := Run(context.Background(), collabs, defaultRunOptions())

	require.NoError(t, err)
	assert.Equal(t, types.StatusPartial, result.Status)
	assert.True(t, result.Findings.Degraded)
	assert.InDelta(t, 50.0, result.Score.Trend, 0.01)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, steps.CollectResearch, result.Failures[0].Step)
}

func TestRun_SingleScriptFailureKeepsOthers(t *testing.T) {
	collabs := healthyCollabs()
	collabs.Scripts = &fakeScripts{
		failTones:  map[types.Tone]error{types.ToneProfessional: errors.New("model overloaded")},
		comparison: "cmp",
	}
	runOpts := defaultRunOptions()
	runOpts.Options.Variations = true

	result, err := Run(context.Background(), collabs, runOpts)

	require.NoError(t, err)
	assert.Equal(t, types.StatusPartial, result.Status)
	assert.Len(t, result.Variants, 2)
	assert.Nil(t, result.Variant(types.ToneProfessional))
	require.Len(t, result.Failures, 1)
	assert.Equal(t, steps.GenerateScript, result.Failures[0].Step)
	assert.Equal(t, types.ToneProfessional, result.Failures[0].Tone)
	// two surviving variants still get compared
	assert.Equal(t, "cmp", result.Comparison)
}

func TestRun_EverythingFailedReturnsAssemblyError(t *testing.T) {
	collabs := Collaborators{
		Metrics:  &fakeMetrics{err: errors.New("metrics down")},
		Research: &fakeResearch{err: errors.New("research down")},
		Scripts: &fakeScripts{failTones: map[types.Tone]error{
			types.ToneEducational:  errors.New("llm down"),
			types.ToneEntertaining: errors.New("llm down"),
			types.ToneProfessional: errors.New("llm down"),
		}},
	}
	runOpts := defaultRunOptions()
	runOpts.Options.Variations = true

	_, err := Run(context.Background(), collabs, runOpts)

	var assemblyErr *AssemblyError
	require.ErrorAs(t, err, &assemblyErr)
	assert.Equal(t, "home espresso", assemblyErr.Topic)
	// 2 fetch failures + 3 script failures
	assert.Len(t, assemblyErr.Failures, 5)
}

func TestRun_DataFailuresWithSurvivingScriptStaysPartial(t *testing.T) {
	collabs := healthyCollabs()
	collabs.Metrics = &fakeMetrics{err: errors.New("metrics down")}
	collabs.Research = &fakeResearch{err: errors.New("research down")}

	result, err := Run(context.Background(), collabs, defaultRunOptions())

	require.NoError(t, err)
	assert.Equal(t, types.StatusPartial, result.Status)
	assert.Len(t, result.Variants, 1)
}

func TestRun_SeoDisabledRecordsSkipReasonAndStaysComplete(t *testing.T) {
	runOpts := defaultRunOptions()
	runOpts.Options.IncludeSEO = false

	result, err := Run(context.Background(), healthyCollabs(), runOpts)

	require.NoError(t, err)
	assert.Equal(t, types.StatusComplete, result.Status)
	assert.Nil(t, result.Seo)
	assert.Equal(t, "seo disabled by options", result.SeoSkipReason)
}

func TestRun_SeoSkippedWhenNoScripts(t *testing.T) {
	collabs := healthyCollabs()
	collabs.Scripts = &fakeScripts{failTones: map[types.Tone]error{
		types.ToneEducational: errors.New("llm down"),
	}}

	result, err := Run(context.Background(), collabs, defaultRunOptions())

	require.NoError(t, err)
	assert.Nil(t, result.Seo)
	assert.Equal(t, "no script variants available", result.SeoSkipReason)
	assert.Equal(t, types.StatusPartial, result.Status)
}

func TestRun_SeoFailureDegrades(t *testing.T) {
	collabs := healthyCollabs()
	collabs.Seo = &fakeSeo{err: errors.New("seo llm down")}

	result, err := Run(context.Background(), collabs, defaultRunOptions())

	require.NoError(t, err)
	assert.Equal(t, types.StatusPartial, result.Status)
	assert.Nil(t, result.Seo)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, steps.GenerateSeo, result.Failures[0].Step)
}

func TestRun_StepTimeoutIsClassified(t *testing.T) {
	collabs := healthyCollabs()
	collabs.Metrics = &fakeMetrics{snapshot: healthySnapshot(), delay: 200 * time.Millisecond}
	runOpts := defaultRunOptions()
	runOpts.StepTimeout = 20 * time.Millisecond

	result, err := Run(context.Background(), collabs, runOpts)

	require.NoError(t, err)
	assert.Equal(t, types.StatusPartial, result.Status)
	require.NotEmpty(t, result.Failures)
	assert.Equal(t, steps.FetchMetrics, result.Failures[0].Step)
	assert.Contains(t, result.Failures[0].Reason, "timeout")
}

func TestRun_ExporterReceivesPackage(t *testing.T) {
	collabs := healthyCollabs()
	exporter := &fakeExporter{}
	collabs.Exporter = exporter

	result, err := Run(context.Background(), collabs, defaultRunOptions())

	require.NoError(t, err)
	require.NotNil(t, exporter.exported)
	assert.Equal(t, result.Topic, exporter.exported.Topic)
	assert.Equal(t, types.StatusComplete, result.Status)
}

func TestRun_ExportFailureDegradesToPartial(t *testing.T) {
	collabs := healthyCollabs()
	collabs.Exporter = &fakeExporter{err: errors.New("disk full")}

	result, err := Run(context.Background(), collabs, defaultRunOptions())

	require.NoError(t, err)
	assert.Equal(t, types.StatusPartial, result.Status)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, steps.Export, result.Failures[0].Step)
}

func TestRun_GapSummaryFailureIsNonFatal(t *testing.T) {
	collabs := healthyCollabs()
	collabs.Research = &fakeResearch{findings: healthyFindings(), gapErr: errors.New("gap llm down")}

	result, err := Run(context.Background(), collabs, defaultRunOptions())

	require.NoError(t, err)
	assert.Equal(t, types.StatusComplete, result.Status)
	assert.Empty(t, result.Findings.GapSummary)
}

func TestRun_BudgetExpiryDuringScriptsAssemblesPartial(t *testing.T) {
	collabs := healthyCollabs()
	collabs.Scripts = &fakeScripts{delay: 2 * time.Second}
	ctx, cancel := context.WithTimeout(context.Background(), 150*time.Millisecond)
	defer cancel()

	result, err := Run(ctx, collabs, defaultRunOptions())

	// Metrics, research, and the score were already in hand; the spent
	// budget must not discard them.
	require.NoError(t, err)
	assert.Equal(t, types.StatusPartial, result.Status)
	assert.False(t, result.Snapshot.Degraded)
	assert.NotNil(t, result.Score)
	assert.Equal(t, "a gap", result.Findings.GapSummary)
	assert.Empty(t, result.Variants)

	failed := map[string]bool{}
	for _, f := range result.Failures {
		failed[f.Step] = true
		if f.Step == steps.GenerateScript {
			assert.Contains(t, f.Reason, "timeout")
		}
	}
	assert.True(t, failed[steps.GenerateScript])
}

func TestRun_ExpiredBudgetBeforeScriptsStillAssembles(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := Run(ctx, healthyCollabs(), defaultRunOptions())

	require.NoError(t, err)
	assert.Equal(t, types.StatusPartial, result.Status)
	assert.Empty(t, result.Variants)
	require.NotEmpty(t, result.Failures)
	var scriptFailures int
	for _, f := range result.Failures {
		if f.Step == steps.GenerateScript {
			scriptFailures++
			assert.Equal(t, types.ToneEducational, f.Tone)
		}
	}
	assert.Equal(t, 1, scriptFailures)
}

func TestRun_BudgetExpiryWithNothingInHandReturnsAssemblyError(t *testing.T) {
	collabs := Collaborators{
		Metrics:  &fakeMetrics{err: context.DeadlineExceeded},
		Research: &fakeResearch{err: context.DeadlineExceeded},
		Scripts:  &fakeScripts{delay: time.Second},
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, collabs, defaultRunOptions())

	var assemblyErr *AssemblyError
	require.ErrorAs(t, err, &assemblyErr)
}

func TestClassify_TimeoutKind(t *testing.T) {
	err := classify(steps.FetchMetrics, context.DeadlineExceeded)

	var collabErr *CollaboratorError
	require.ErrorAs(t, err, &collabErr)
	assert.Equal(t, KindTimeout, collabErr.Kind)
}

func TestClassify_UnavailableKind(t *testing.T) {
	err := classify(steps.GenerateSeo, errors.New("boom"))

	var collabErr *CollaboratorError
	require.ErrorAs(t, err, &collabErr)
	assert.Equal(t, KindUnavailable, collabErr.Kind)
}

func TestSeoSourceScript_PrefersEntertaining(t *testing.T) {
	variants := []types.ScriptVariant{
		{Tone: types.ToneProfessional},
		{Tone: types.ToneEntertaining},
		{Tone: types.ToneEducational},
	}

	assert.Equal(t, types.ToneEntertaining, seoSourceScript(variants).Tone)
}

func TestSeoSourceScript_FallsBackToEducationalThenFirst(t *testing.T) {
	assert.Equal(t, types.ToneEducational, seoSourceScript([]types.ScriptVariant{
		{Tone: types.ToneProfessional},
		{Tone: types.ToneEducational},
	}).Tone)

	assert.Equal(t, types.ToneProfessional, seoSourceScript([]types.ScriptVariant{
		{Tone: types.ToneProfessional},
	}).Tone)
}
