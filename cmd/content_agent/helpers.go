package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/content-scout/internal/config"
	"github.com/jonathan/content-scout/internal/costs"
	"github.com/jonathan/content-scout/internal/db"
	"github.com/jonathan/content-scout/internal/export"
	"github.com/jonathan/content-scout/internal/llm"
	"github.com/jonathan/content-scout/internal/metrics"
	"github.com/jonathan/content-scout/internal/pipeline"
	"github.com/jonathan/content-scout/internal/research"
	"github.com/jonathan/content-scout/internal/scripting"
	"github.com/jonathan/content-scout/internal/seo"
)

// loadMergedConfig loads an optional config file, overlays environment
// variables, and validates the result.
func loadMergedConfig(path string) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.FromEnv()
	merged := cfg.MergeWithDefaults(config.Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// buildCollaborators wires every pipeline collaborator from configuration.
// Missing API keys leave the matching collaborator nil so its step degrades;
// the Gemini key is required because scripts cannot degrade into a package.
// The returned cleanup releases the LLM client and database pool.
func buildCollaborators(ctx context.Context, cfg *config.Config, outputDir string, verbose bool) (pipeline.Collaborators, func(), error) {
	if cfg.GeminiAPIKey == "" {
		return pipeline.Collaborators{}, nil, fmt.Errorf("Gemini API key is required (set GEMINI_API_KEY or gemini_api_key in config)")
	}

	client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return pipeline.Collaborators{}, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	collabs := pipeline.Collaborators{
		Scripts:  scripting.NewGenerator(client),
		Seo:      seo.NewGenerator(client),
		Exporter: export.NewWriter(outputDir),
		Costs:    costs.NewTracker(cfg.CostLog),
	}

	if cfg.YouTubeAPIKey != "" {
		fetcher, err := metrics.NewFetcher(ctx, cfg.YouTubeAPIKey)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: metrics fetcher unavailable: %v\n", err)
		} else {
			collabs.Metrics = fetcher
		}
	} else if verbose {
		fmt.Println("[VERBOSE] YOUTUBE_API_KEY not set; metrics step will degrade")
	}

	if cfg.SearchAPIKey != "" && cfg.SearchEngineID != "" {
		var pages *research.PageFetcher
		if cfg.FetchPages {
			pages = research.NewPageFetcher()
		}
		collector, err := research.NewCollector(ctx, cfg.SearchAPIKey, cfg.SearchEngineID, client, pages)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: research collector unavailable: %v\n", err)
		} else {
			collabs.Research = collector
		}
	} else if verbose {
		fmt.Println("[VERBOSE] SEARCH_API_KEY/SEARCH_ENGINE_ID not set; research step will degrade")
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Failed to connect to database: %v\n", err)
			fmt.Fprintln(os.Stderr, "Continuing without database persistence...")
		} else {
			collabs.Database = database
		}
	}

	cleanup := func() {
		_ = client.Close()
		if collabs.Database != nil {
			collabs.Database.Close()
		}
	}
	return collabs, cleanup, nil
}
