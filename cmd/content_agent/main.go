// Package main provides the entry point for the content scout CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "content_agent",
	Short: "YouTube content opportunity pipeline",
	Long:  "Content Scout scores YouTube topic opportunities from live video metrics and web research, then generates tone-variant scripts and SEO metadata for the ones worth making.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
