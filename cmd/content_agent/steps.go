package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/content-scout/internal/pipeline/steps"
)

var stepsCmd = &cobra.Command{
	Use:   "steps",
	Short: "List pipeline steps and their dependencies",
	Long:  "Print every pipeline step with its category and dependencies. With --completed, also show which steps are runnable and which are blocked.",
	RunE:  runSteps,
}

var stepsCompleted []string

func init() {
	stepsCmd.Flags().StringSliceVar(&stepsCompleted, "completed", nil, "Steps to treat as completed (comma-separated)")

	rootCmd.AddCommand(stepsCmd)
}

func runSteps(_ *cobra.Command, _ []string) error {
	fmt.Printf("%-18s %-12s %-35s %s\n", "STEP", "CATEGORY", "DEPENDS ON", "OPTIONAL")
	for _, name := range steps.AllSteps() {
		def := steps.StepRegistry[name]
		fmt.Printf("%-18s %-12s %-35s %s\n",
			def.Name, def.Category, joinOrDash(def.Dependencies), joinOrDash(def.Optional))
	}

	if len(stepsCompleted) > 0 {
		completed := make(map[string]bool, len(stepsCompleted))
		for _, name := range stepsCompleted {
			if _, ok := steps.StepRegistry[name]; !ok {
				return fmt.Errorf("unknown step: %s", name)
			}
			completed[name] = true
		}

		fmt.Printf("\nAvailable: %s\n", joinOrDash(steps.AvailableSteps(completed)))
		fmt.Printf("Blocked:   %s\n", joinOrDash(steps.BlockedSteps(completed)))
	}

	return nil
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
