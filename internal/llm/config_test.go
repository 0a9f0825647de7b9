package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig_HasAllTiers(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.NotEmpty(t, config.GetModel(TierFast))
	assert.NotEmpty(t, config.GetModel(TierAnalysis))
	assert.NotEmpty(t, config.GetModel(TierCreative))
}

func TestGetModel_FallbackChain(t *testing.T) {
	config := &Config{
		Models: map[ModelTier]string{
			TierFast: "fast-model",
		},
	}

	// Unknown tier falls back through analysis to fast
	assert.Equal(t, "fast-model", config.GetModel(TierCreative))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{Models: map[ModelTier]string{}}

	assert.Equal(t, "", config.GetModel(TierAnalysis))
}

func TestGetTemperature_CreativeRunsHotter(t *testing.T) {
	config := DefaultConfig()

	assert.Greater(t, config.GetTemperature(TierCreative), config.GetTemperature(TierFast))
}

func TestWithModel_DoesNotMutateOriginal(t *testing.T) {
	original := DefaultConfig()
	originalModel := original.GetModel(TierAnalysis)

	modified := original.WithModel(TierAnalysis, "custom-model")

	assert.Equal(t, "custom-model", modified.GetModel(TierAnalysis))
	assert.Equal(t, originalModel, original.GetModel(TierAnalysis))
}
