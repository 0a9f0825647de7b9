// Package llm provides centralized LLM configuration and client abstractions
// for the generation agents (research analysis, script writing, SEO).
package llm

// ModelTier represents the capability level of a model for a given task.
type ModelTier string

const (
	// TierFast is for cheap structured tasks: SEO metadata, classification.
	TierFast ModelTier = "fast"
	// TierAnalysis is for research synthesis and gap analysis.
	TierAnalysis ModelTier = "analysis"
	// TierCreative is for script writing, where variety matters more than
	// strict determinism.
	TierCreative ModelTier = "creative"
)

// Provider represents an LLM provider.
type Provider string

// Supported providers.
const (
	ProviderGemini Provider = "gemini"
)

// Config holds model selection and sampling temperature per tier.
type Config struct {
	Provider     Provider
	Models       map[ModelTier]string
	Temperatures map[ModelTier]float32
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierFast:     "gemini-2.5-flash-lite",
			TierAnalysis: "gemini-2.5-flash",
			TierCreative: "gemini-2.5-pro",
		},
		Temperatures: map[ModelTier]float32{
			TierFast:     0.2,
			TierAnalysis: 0.3,
			TierCreative: 0.7,
		},
	}
}

// GetModel returns the model name for a tier, falling back to the analysis
// tier and then the fast tier.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierAnalysis]; ok {
		return model
	}
	if model, ok := c.Models[TierFast]; ok {
		return model
	}
	return ""
}

// GetTemperature returns the sampling temperature for a tier.
func (c *Config) GetTemperature(tier ModelTier) float32 {
	if temp, ok := c.Temperatures[tier]; ok {
		return temp
	}
	return 0.3
}

// WithModel returns a copy of the config with a specific model for a tier.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider:     c.Provider,
		Models:       make(map[ModelTier]string, len(c.Models)),
		Temperatures: make(map[ModelTier]float32, len(c.Temperatures)),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	for k, v := range c.Temperatures {
		newConfig.Temperatures[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
