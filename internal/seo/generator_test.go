package seo

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/content-scout/internal/llm"
	"github.com/jonathan/content-scout/internal/types"
)

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

const validResponse = `{
	"titles": ["Title One", "Title Two", "Title Three"],
	"description": "A description with keywords.",
	"tags": ["espresso", "coffee"],
	"thumbnail_text": "DIAL IT IN"
}`

func sampleScript() *types.ScriptVariant {
	return &types.ScriptVariant{
		Tone:         types.ToneEducational,
		Body:         "HOOK: ever wondered why your shots taste sour?",
		TargetLength: "10-12 minutes",
	}
}

func TestGenerate_ReturnsParsedPackage(t *testing.T) {
	stub := &stubLLM{response: validResponse}
	gen := NewGenerator(stub)

	pkg, err := gen.Generate(context.Background(), "home espresso", sampleScript(), nil)

	require.NoError(t, err)
	assert.Len(t, pkg.Titles, 3)
	assert.Equal(t, "A description with keywords.", pkg.Description)
	assert.Equal(t, []string{"espresso", "coffee"}, pkg.Tags)
	assert.Equal(t, "DIAL IT IN", pkg.ThumbnailText)
	assert.Equal(t, llm.TierFast, stub.lastTier)
}

func TestGenerate_PromptIncludesScriptAndFindings(t *testing.T) {
	stub := &stubLLM{response: validResponse}
	gen := NewGenerator(stub)
	findings := &types.ResearchFindings{
		Trends:    []string{"home cafe setups"},
		Questions: []string{"what grinder should I buy?"},
	}

	_, err := gen.Generate(context.Background(), "home espresso", sampleScript(), findings)

	require.NoError(t, err)
	assert.Contains(t, stub.lastPrompt, "ever wondered why your shots taste sour?")
	assert.Contains(t, stub.lastPrompt, "home cafe setups")
	assert.Contains(t, stub.lastPrompt, "what grinder should I buy?")
}

func TestGenerate_RequiresScript(t *testing.T) {
	gen := NewGenerator(&stubLLM{response: validResponse})

	_, err := gen.Generate(context.Background(), "topic", nil, nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "source script is required")
}

func TestGenerate_LLMFailure(t *testing.T) {
	gen := NewGenerator(&stubLLM{err: errors.New("timeout")})

	_, err := gen.Generate(context.Background(), "topic", sampleScript(), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SEO generation failed")
}

func TestParseSeoPackage_ClampsExcessTitlesAndTags(t *testing.T) {
	var tags []string
	for i := 0; i < types.MaxTags+10; i++ {
		tags = append(tags, "tag")
	}
	raw := `{
		"titles": ["a", "b", "c", "d", "e"],
		"description": "desc",
		"tags": ["` + strings.Join(tags, `","`) + `"],
		"thumbnail_text": "x"
	}`

	pkg, err := parseSeoPackage(raw)

	require.NoError(t, err)
	assert.Len(t, pkg.Titles, types.TitleCandidateCount)
	assert.Len(t, pkg.Tags, types.MaxTags)
}

func TestParseSeoPackage_RejectsMissingTitles(t *testing.T) {
	_, err := parseSeoPackage(`{"titles": [], "description": "d"}`)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing title candidates")
}

func TestParseSeoPackage_RejectsMissingDescription(t *testing.T) {
	_, err := parseSeoPackage(`{"titles": ["a"], "description": ""}`)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing description")
}

func TestParseSeoPackage_InvalidJSON(t *testing.T) {
	_, err := parseSeoPackage("nope")

	require.Error(t, err)
}

func TestScriptExcerpt_TruncatesLongScripts(t *testing.T) {
	long := strings.Repeat("x", maxScriptExcerpt+500)

	assert.Len(t, scriptExcerpt(long), maxScriptExcerpt)
	assert.Equal(t, "short", scriptExcerpt("short"))
}
