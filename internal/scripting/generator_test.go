package scripting

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/content-scout/internal/llm"
	"github.com/jonathan/content-scout/internal/types"
)

// stubLLM returns canned responses for generator tests.
type stubLLM struct {
	response   string
	err        error
	lastPrompt string
	lastTier   llm.ModelTier
}

func (s *stubLLM) GenerateContent(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	s.lastPrompt = prompt
	s.lastTier = tier
	return s.response, s.err
}

func (s *stubLLM) GenerateJSON(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	s.lastPrompt = prompt
	s.lastTier = tier
	return s.response, s.err
}

func (s *stubLLM) GetModel(tier llm.ModelTier) string { return "stub-" + string(tier) }
func (s *stubLLM) Close() error                       { return nil }

func sampleScore() *types.OpportunityScore {
	return &types.OpportunityScore{
		Demand:      80,
		Competition: 60,
		Engagement:  40,
		Trend:       60,
		Aggregate:   61,
		Tier:        types.TierModerate,
	}
}

func TestGenerate_ReturnsVariantWithToneAndLength(t *testing.T) {
	stub := &stubLLM{response: "  HOOK: grab attention...\nINTRO: ...  "}
	gen := NewGenerator(stub)

	variant, err := gen.Generate(context.Background(), "home espresso", types.ToneEducational, "10-12 minutes", sampleScore(), &types.ResearchFindings{Trends: []string{"latte art"}})

	require.NoError(t, err)
	assert.Equal(t, types.ToneEducational, variant.Tone)
	assert.Equal(t, "10-12 minutes", variant.TargetLength)
	assert.Equal(t, "HOOK: grab attention...\nINTRO: ...", variant.Body)
	assert.Equal(t, llm.TierCreative, stub.lastTier)
}

func TestGenerate_PromptCarriesToneAndContext(t *testing.T) {
	stub := &stubLLM{response: "script"}
	gen := NewGenerator(stub)
	findings := &types.ResearchFindings{
		Trends:     []string{"cold brew at home"},
		GapSummary: "Nobody covers water chemistry.",
	}

	_, err := gen.Generate(context.Background(), "home espresso", types.ToneEntertaining, "5-8 minutes", sampleScore(), findings)

	require.NoError(t, err)
	assert.Contains(t, stub.lastPrompt, "home espresso")
	assert.Contains(t, stub.lastPrompt, "entertaining")
	assert.Contains(t, stub.lastPrompt, types.ToneEntertaining.Description())
	assert.Contains(t, stub.lastPrompt, "cold brew at home")
	assert.Contains(t, stub.lastPrompt, "Nobody covers water chemistry.")
	assert.Contains(t, stub.lastPrompt, "5-8 minutes")
}

func TestGenerate_HandlesMissingScoreAndFindings(t *testing.T) {
	stub := &stubLLM{response: "script body"}
	gen := NewGenerator(stub)

	variant, err := gen.Generate(context.Background(), "topic", types.ToneProfessional, "10-12 minutes", nil, nil)

	require.NoError(t, err)
	assert.NotEmpty(t, variant.Body)
	assert.Contains(t, stub.lastPrompt, "Opportunity score unavailable.")
	assert.Contains(t, stub.lastPrompt, "No research findings available.")
}

func TestGenerate_LLMFailure(t *testing.T) {
	stub := &stubLLM{err: errors.New("quota exceeded")}
	gen := NewGenerator(stub)

	_, err := gen.Generate(context.Background(), "topic", types.ToneEducational, "10-12 minutes", nil, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "educational")
}

func TestGenerate_EmptyScriptRejected(t *testing.T) {
	stub := &stubLLM{response: "   \n  "}
	gen := NewGenerator(stub)

	_, err := gen.Generate(context.Background(), "topic", types.ToneEducational, "10-12 minutes", nil, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty script")
}

func TestCompareVariations_RequiresTwoVariants(t *testing.T) {
	gen := NewGenerator(&stubLLM{response: "comparison"})

	_, err := gen.CompareVariations(context.Background(), "topic", []types.ScriptVariant{
		{Tone: types.ToneEducational, Body: "only one"},
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 2")
}

func TestCompareVariations_PromptIncludesAllVariants(t *testing.T) {
	stub := &stubLLM{response: "the entertaining one wins"}
	gen := NewGenerator(stub)
	variants := []types.ScriptVariant{
		{Tone: types.ToneEducational, Body: "teach the basics", TargetLength: "10-12 minutes"},
		{Tone: types.ToneEntertaining, Body: "make them laugh", TargetLength: "10-12 minutes"},
	}

	comparison, err := gen.CompareVariations(context.Background(), "topic", variants)

	require.NoError(t, err)
	assert.Equal(t, "the entertaining one wins", comparison)
	assert.Contains(t, stub.lastPrompt, "VARIANT 1: EDUCATIONAL")
	assert.Contains(t, stub.lastPrompt, "VARIANT 2: ENTERTAINING")
	assert.Contains(t, stub.lastPrompt, "teach the basics")
	assert.Contains(t, stub.lastPrompt, "make them laugh")
	assert.Equal(t, llm.TierAnalysis, stub.lastTier)
}

func TestFormatScoreSummary_IncludesSubScores(t *testing.T) {
	summary := formatScoreSummary(sampleScore())

	assert.Contains(t, summary, "61/100")
	assert.Contains(t, summary, "MODERATE")
	assert.Contains(t, summary, "Demand 80")
}
