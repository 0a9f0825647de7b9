// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/content-scout/internal/scoring"
	"github.com/jonathan/content-scout/internal/types"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Run settings
	Tone       string `json:"tone,omitempty"`        // Script tone (educational, entertaining, professional, all)
	Length     string `json:"length,omitempty"`      // Target video length
	Variations bool   `json:"variations,omitempty"`  // Generate all three tone variants
	SkipSEO    bool   `json:"skip_seo,omitempty"`    // Skip SEO metadata generation
	OutputDir  string `json:"output_path,omitempty"` // Directory for exported artifacts

	// API keys
	GeminiAPIKey   string `json:"gemini_api_key,omitempty"`   // Gemini API key
	YouTubeAPIKey  string `json:"youtube_api_key,omitempty"`  // YouTube Data API key
	SearchAPIKey   string `json:"search_api_key,omitempty"`   // Custom Search API key
	SearchEngineID string `json:"search_engine_id,omitempty"` // Custom Search engine ID (cx)

	// Behavior
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	FetchPages  bool   `json:"fetch_pages,omitempty"`  // Fetch result pages for research enrichment
	StepTimeout int    `json:"step_timeout,omitempty"` // Per-step timeout in seconds
	Budget      int    `json:"budget,omitempty"`       // Total run budget in seconds (0 = no limit)
	CostLog     string `json:"cost_log,omitempty"`     // Cost history file path
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL

	// Scoring
	Weights *scoring.Weights `json:"weights,omitempty"` // Score weight overrides (must sum to 1.0)
}

// Defaults returns the built-in configuration defaults applied after the
// config file and environment have been read.
func Defaults() Config {
	return Config{
		Tone:      string(types.ToneEducational),
		Length:    types.DefaultLength,
		OutputDir: "output",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Tone != "" {
		if _, err := types.ParseTone(c.Tone); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	if c.Length != "" {
		valid := false
		for _, l := range types.ValidLengths {
			if c.Length == l {
				valid = true
				break
			}
		}
		if !valid {
			return fmt.Errorf("config error: invalid length %q", c.Length)
		}
	}

	if c.StepTimeout < 0 {
		return fmt.Errorf("config error: 'step_timeout' must be non-negative")
	}

	if c.Budget < 0 {
		return fmt.Errorf("config error: 'budget' must be non-negative")
	}

	if c.Weights != nil {
		if err := c.Weights.Validate(); err != nil {
			return fmt.Errorf("config error: invalid weights: %w", err)
		}
	}

	return nil
}

// ScoreWeights returns the configured scoring weights, falling back to the
// documented defaults when the config file does not set them.
func (c *Config) ScoreWeights() scoring.Weights {
	if c.Weights != nil {
		return *c.Weights
	}
	return scoring.DefaultWeights()
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Tone == "" {
		result.Tone = defaults.Tone
	}
	if result.Length == "" {
		result.Length = defaults.Length
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.YouTubeAPIKey == "" {
		result.YouTubeAPIKey = defaults.YouTubeAPIKey
	}
	if result.SearchAPIKey == "" {
		result.SearchAPIKey = defaults.SearchAPIKey
	}
	if result.SearchEngineID == "" {
		result.SearchEngineID = defaults.SearchEngineID
	}
	if result.CostLog == "" {
		result.CostLog = defaults.CostLog
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.StepTimeout == 0 {
		result.StepTimeout = defaults.StepTimeout
	}
	if result.Budget == 0 {
		result.Budget = defaults.Budget
	}

	if result.Weights == nil {
		result.Weights = defaults.Weights
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// FromEnv fills API keys and the database URL from environment variables for
// any values not already set.
func (c *Config) FromEnv() {
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.YouTubeAPIKey == "" {
		c.YouTubeAPIKey = os.Getenv("YOUTUBE_API_KEY")
	}
	if c.SearchAPIKey == "" {
		c.SearchAPIKey = os.Getenv("SEARCH_API_KEY")
	}
	if c.SearchEngineID == "" {
		c.SearchEngineID = os.Getenv("SEARCH_ENGINE_ID")
	}
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
}
