package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/content-scout/internal/pipeline"
	"github.com/jonathan/content-scout/internal/types"
)

var runCmd = &cobra.Command{
	Use:   "run <topic>",
	Short: "Run the full content pipeline for a topic",
	Long:  "Fetch video metrics and web research for a topic, score the opportunity, generate scripts in the requested tone(s), produce SEO metadata, and export everything to the output directory.",
	Args:  cobra.ExactArgs(1),
}

var (
	runTone        string
	runLength      string
	runVariations  bool
	runNoSeo       bool
	runOut         string
	runConfigPath  string
	runVerbose     bool
	runFetchPages  bool
	runStepTimeout int
	runBudget      int
	runCostLog     string
	runDatabaseURL string
)

func init() {
	runCmd.RunE = runRun
	runCmd.Flags().StringVarP(&runTone, "tone", "t", string(types.ToneEducational), "Script tone: educational, entertaining, professional, or all")
	runCmd.Flags().StringVarP(&runLength, "length", "l", types.DefaultLength, "Target video length")
	runCmd.Flags().BoolVar(&runVariations, "variations", false, "Generate all three tone variants")
	runCmd.Flags().BoolVar(&runNoSeo, "no-seo", false, "Skip SEO metadata generation")
	runCmd.Flags().StringVarP(&runOut, "out", "o", "output", "Output directory for exported artifacts")
	runCmd.Flags().StringVarP(&runConfigPath, "config", "c", "", "Path to JSON config file")
	runCmd.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print detailed progress information")
	runCmd.Flags().BoolVar(&runFetchPages, "fetch-pages", false, "Fetch result pages to enrich research")
	runCmd.Flags().IntVar(&runStepTimeout, "step-timeout", 0, "Per-step timeout in seconds (0 uses the default)")
	runCmd.Flags().IntVar(&runBudget, "budget", 0, "Total run budget in seconds; on expiry the run assembles whatever is done (0 means no limit)")
	runCmd.Flags().StringVar(&runCostLog, "cost-log", "", "Cost history file path")
	runCmd.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL URL for run persistence (overrides DATABASE_URL)")

	rootCmd.AddCommand(runCmd)
}

func runRun(_ *cobra.Command, args []string) error {
	topic := args[0]

	cfg, err := loadMergedConfig(runConfigPath)
	if err != nil {
		return err
	}

	// CLI flags win over config file values
	if runDatabaseURL != "" {
		cfg.DatabaseURL = runDatabaseURL
	}
	if runCostLog != "" {
		cfg.CostLog = runCostLog
	}
	if runFetchPages {
		cfg.FetchPages = true
	}
	tone := runTone
	if cfg.Tone != "" && !runCmd.Flags().Changed("tone") {
		tone = cfg.Tone
	}
	length := runLength
	if cfg.Length != "" && !runCmd.Flags().Changed("length") {
		length = cfg.Length
	}
	outputDir := runOut
	if cfg.OutputDir != "" && !runCmd.Flags().Changed("out") {
		outputDir = cfg.OutputDir
	}

	parsedTone, err := types.ParseTone(tone)
	if err != nil {
		return err
	}

	opts := types.Options{
		Tone:       parsedTone,
		Variations: runVariations || cfg.Variations,
		Length:     length,
		IncludeSEO: !runNoSeo && !cfg.SkipSEO,
		OutputDir:  outputDir,
	}

	stepTimeout := time.Duration(runStepTimeout) * time.Second
	if runStepTimeout == 0 && cfg.StepTimeout > 0 {
		stepTimeout = time.Duration(cfg.StepTimeout) * time.Second
	}
	budget := runBudget
	if runBudget == 0 && cfg.Budget > 0 {
		budget = cfg.Budget
	}

	ctx := context.Background()
	if budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(budget)*time.Second)
		defer cancel()
	}
	collabs, cleanup, err := buildCollaborators(ctx, cfg, outputDir, runVerbose || cfg.Verbose)
	if err != nil {
		return err
	}
	defer cleanup()

	pkg, err := pipeline.Run(ctx, collabs, pipeline.RunOptions{
		Topic:       topic,
		Options:     opts,
		Weights:     cfg.ScoreWeights(),
		StepTimeout: stepTimeout,
		Verbose:     runVerbose || cfg.Verbose,
	})
	if collabs.Costs != nil {
		fmt.Print(collabs.Costs.SessionSummary())
		if saveErr := collabs.Costs.SaveSession(); saveErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save cost log: %v\n", saveErr)
		}
	}
	if err != nil {
		var assemblyErr *pipeline.AssemblyError
		if errors.As(err, &assemblyErr) {
			fmt.Fprintf(os.Stderr, "%v\n", assemblyErr)
			os.Exit(types.ExitFailed)
		}
		return err
	}

	printRunSummary(pkg)
	if code := pkg.Status.ExitCode(); code != types.ExitComplete {
		os.Exit(code)
	}
	return nil
}

func printRunSummary(pkg *types.ContentPackage) {
	fmt.Printf("\nDone! Status: %s\n", pkg.Status)
	if pkg.Score != nil {
		fmt.Printf("Opportunity: %.0f/100 (%s)\n", pkg.Score.Aggregate, pkg.Score.Tier)
	}
	fmt.Printf("Scripts generated: %d\n", len(pkg.Variants))
	if pkg.Seo != nil {
		fmt.Printf("SEO metadata: %d title candidates, %d tags\n", len(pkg.Seo.Titles), len(pkg.Seo.Tags))
	} else if pkg.SeoSkipReason != "" {
		fmt.Printf("SEO skipped: %s\n", pkg.SeoSkipReason)
	}
	for _, f := range pkg.Failures {
		if f.Tone != "" {
			fmt.Printf("Degraded: %s (%s): %s\n", f.Step, f.Tone, f.Reason)
		} else {
			fmt.Printf("Degraded: %s: %s\n", f.Step, f.Reason)
		}
	}
}
