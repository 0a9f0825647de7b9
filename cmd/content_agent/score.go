package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/content-scout/internal/config"
	"github.com/jonathan/content-scout/internal/llm"
	"github.com/jonathan/content-scout/internal/metrics"
	"github.com/jonathan/content-scout/internal/observability"
	"github.com/jonathan/content-scout/internal/research"
	"github.com/jonathan/content-scout/internal/scoring"
	"github.com/jonathan/content-scout/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score <topic>",
	Short: "Score a topic's opportunity without generating content",
	Long:  "Fetch video metrics and web research for a topic and print the opportunity score breakdown. Missing API keys degrade the matching sub-score to its neutral midpoint.",
	Args:  cobra.ExactArgs(1),
	RunE:  runScore,
}

var (
	scoreConfigPath string
	scoreJSON       bool
	scoreVerbose    bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreConfigPath, "config", "c", "", "Path to JSON config file")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the score as JSON")
	scoreCmd.Flags().BoolVarP(&scoreVerbose, "verbose", "v", false, "Print the snapshot and findings used for scoring")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, args []string) error {
	topic := args[0]
	if err := types.ValidateTopic(topic); err != nil {
		return err
	}

	cfg, err := loadMergedConfig(scoreConfigPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	snapshot, findings := gatherSignals(ctx, cfg, topic, scoreVerbose)

	score := scoring.Score(snapshot, findings, cfg.ScoreWeights())

	if scoreJSON {
		data, err := json.MarshalIndent(score, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode score: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	printer := observability.NewPrinter(os.Stdout)
	if scoreVerbose {
		printer.PrintSnapshot(snapshot)
		printer.PrintFindings(findings)
	}
	printer.PrintScore(topic, &score)
	return nil
}

// gatherSignals fetches whatever scoring inputs the configured keys allow,
// degrading the rest.
func gatherSignals(ctx context.Context, cfg *config.Config, topic string, verbose bool) (*types.Snapshot, *types.ResearchFindings) {
	snapshot := types.DegradedSnapshot()
	if cfg.YouTubeAPIKey != "" {
		fetcher, err := metrics.NewFetcher(ctx, cfg.YouTubeAPIKey)
		if err == nil {
			if fetched, err := fetcher.Fetch(ctx, topic); err == nil {
				snapshot = fetched
			} else {
				fmt.Fprintf(os.Stderr, "Warning: metrics fetch failed: %v\n", err)
			}
		}
	} else if verbose {
		fmt.Println("[VERBOSE] YOUTUBE_API_KEY not set; demand/competition/engagement use neutral midpoints")
	}

	findings := types.DegradedFindings()
	if cfg.SearchAPIKey != "" && cfg.SearchEngineID != "" && cfg.GeminiAPIKey != "" {
		client, err := llm.NewClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
		if err == nil {
			defer func() { _ = client.Close() }()
			collector, err := research.NewCollector(ctx, cfg.SearchAPIKey, cfg.SearchEngineID, client, nil)
			if err == nil {
				if collected, err := collector.Collect(ctx, topic); err == nil {
					findings = collected
				} else {
					fmt.Fprintf(os.Stderr, "Warning: research collection failed: %v\n", err)
				}
			}
		}
	} else if verbose {
		fmt.Println("[VERBOSE] Search or Gemini keys not set; trend uses its neutral midpoint")
	}

	return snapshot, findings
}
