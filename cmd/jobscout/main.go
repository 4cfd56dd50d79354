// Package main provides the entry point for the JobScout aggregator.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "jobscout",
	Short: "JobScout job posting aggregator",
	Long:  "JobScout scrapes job postings from multiple platforms, merges and normalizes them, and filters out blacklisted companies per user. Exposes a REST API and a one-shot search command.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
