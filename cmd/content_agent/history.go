package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/content-scout/internal/db"
)

var historyCmd = &cobra.Command{
	Use:   "history [topic]",
	Short: "List recent pipeline runs from the database",
	Long:  "List recent pipeline runs recorded in PostgreSQL, optionally filtered to one topic. Requires DATABASE_URL or --db-url.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

var (
	historyDatabaseURL string
	historyLimit       int
)

func init() {
	historyCmd.Flags().StringVar(&historyDatabaseURL, "db-url", "", "PostgreSQL URL (overrides DATABASE_URL)")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum runs to list")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, args []string) error {
	databaseURL := historyDatabaseURL
	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		return fmt.Errorf("database URL is required (set DATABASE_URL or use --db-url)")
	}

	ctx := context.Background()
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer database.Close()

	var runs []db.Run
	if len(args) == 1 {
		runs, err = database.ListRunsForTopic(ctx, args[0], historyLimit)
	} else {
		runs, err = database.ListRecentRuns(ctx, historyLimit)
	}
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded.")
		return nil
	}

	fmt.Printf("%-36s %-30s %-13s %-10s %s\n", "RUN", "TOPIC", "TONE", "STATUS", "STARTED")
	for _, r := range runs {
		topic := r.Topic
		if len(topic) > 30 {
			topic = topic[:27] + "..."
		}
		fmt.Printf("%-36s %-30s %-13s %-10s %s\n",
			r.ID, topic, r.Tone, r.Status, r.CreatedAt.Format(time.RFC3339))
	}
	return nil
}
