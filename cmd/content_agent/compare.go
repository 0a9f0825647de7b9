package main

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jonathan/content-scout/internal/scoring"
	"github.com/jonathan/content-scout/internal/types"
)

var compareCmd = &cobra.Command{
	Use:   "compare <topic> <topic> [topic...]",
	Short: "Score multiple topics and rank them",
	Long:  "Score two or more topics with the same weights and print them ranked by aggregate opportunity, strongest first.",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runCompare,
}

var compareConfigPath string

func init() {
	compareCmd.Flags().StringVarP(&compareConfigPath, "config", "c", "", "Path to JSON config file")

	rootCmd.AddCommand(compareCmd)
}

type rankedTopic struct {
	Topic string
	Score types.OpportunityScore
}

func runCompare(_ *cobra.Command, args []string) error {
	for _, topic := range args {
		if err := types.ValidateTopic(topic); err != nil {
			return fmt.Errorf("topic %q: %w", topic, err)
		}
	}

	cfg, err := loadMergedConfig(compareConfigPath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	weights := cfg.ScoreWeights()

	ranked := make([]rankedTopic, 0, len(args))
	for _, topic := range args {
		fmt.Printf("Scoring %q...\n", topic)
		snapshot, findings := gatherSignals(ctx, cfg, topic, false)
		ranked = append(ranked, rankedTopic{
			Topic: topic,
			Score: scoring.Score(snapshot, findings, weights),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score.Aggregate > ranked[j].Score.Aggregate
	})

	fmt.Printf("\nTOPIC COMPARISON\n\n")
	fmt.Printf("%-4s %-40s %-10s %s\n", "#", "TOPIC", "TIER", "SCORE")
	for i, r := range ranked {
		topic := r.Topic
		if len(topic) > 40 {
			topic = topic[:37] + "..."
		}
		fmt.Printf("%-4d %-40s %-10s %.0f\n", i+1, topic, r.Score.Tier, r.Score.Aggregate)
	}

	best := ranked[0]
	fmt.Printf("\nRecommendation: %q (%s, %.0f/100)\n", best.Topic, best.Score.Tier, best.Score.Aggregate)
	fmt.Printf("  Demand %.0f | Competition %.0f | Engagement %.0f | Trend %.0f\n",
		best.Score.Demand, best.Score.Competition, best.Score.Engagement, best.Score.Trend)

	return nil
}
