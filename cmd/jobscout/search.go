package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/mgarcia/jobscout/internal/db"
	"github.com/mgarcia/jobscout/internal/exclusion"
	"github.com/mgarcia/jobscout/internal/observability"
	"github.com/mgarcia/jobscout/internal/scrape"
	"github.com/mgarcia/jobscout/internal/search"
	"github.com/mgarcia/jobscout/internal/types"
)

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run a one-shot job search and print the results as JSON",
	Long:  "Scrape the configured platforms for the given job title and location, merge and normalize the postings, and print them to stdout. With --user, the user's company blacklist is applied.",
	RunE:  runSearch,
}

var (
	searchTitle    string
	searchLocation string
	searchPlatform string
	searchUser     string
	platformsFile  string
	timeoutSeconds int
	searchVerbose  bool
)

func init() {
	searchCmd.Flags().StringVarP(&searchTitle, "title", "t", "", "Job title to search for (default \""+types.DefaultJobTitle+"\")")
	searchCmd.Flags().StringVarP(&searchLocation, "location", "l", "", "Location to search in (default \""+types.DefaultLocation+"\")")
	searchCmd.Flags().StringVarP(&searchPlatform, "platform", "p", "", "Restrict the search to one platform (default: all)")
	searchCmd.Flags().StringVarP(&searchUser, "user", "u", "", "User ID whose blacklist to apply (requires DATABASE_URL)")
	searchCmd.Flags().StringVar(&platformsFile, "platforms-file", "", "JSON file with platform descriptor overrides")
	searchCmd.Flags().IntVar(&timeoutSeconds, "timeout", 30, "Per-platform render timeout in seconds")
	searchCmd.Flags().BoolVarP(&searchVerbose, "verbose", "v", false, "Log scraping progress")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, _ []string) error {
	var platforms []types.Platform
	if searchPlatform != "" {
		platform, ok := types.ParsePlatform(searchPlatform)
		if !ok {
			return fmt.Errorf("unknown platform: %s", searchPlatform)
		}
		platforms = []types.Platform{platform}
	}
	query := types.NewSearchQuery(searchTitle, searchLocation, platforms)

	printer := observability.NewPrinter(os.Stderr)
	if searchVerbose {
		printer.PrintQuery(query)
	}

	registry, err := scrape.LoadRegistry(platformsFile)
	if err != nil {
		return err
	}

	renderer := &scrape.ChromeRenderer{Verbose: searchVerbose}
	extractor := scrape.NewExtractor(renderer, time.Duration(timeoutSeconds)*time.Second)
	orchestrator := scrape.NewOrchestrator(extractor, registry, searchVerbose)

	ctx := cmd.Context()
	postings, failures := orchestrator.Run(ctx, query)
	if searchVerbose {
		printer.PrintResults(postings, failures)
	}
	if err := aggregateFailure(query, failures); err != nil {
		return err
	}

	if searchUser != "" {
		postings, err = applyBlacklist(ctx, searchUser, postings)
		if err != nil {
			return err
		}
	}

	out := map[string]any{
		"jobs":  postings,
		"count": len(postings),
	}
	if len(failures) > 0 {
		failed := make([]string, 0, len(failures))
		for _, f := range failures {
			failed = append(failed, string(f.Platform))
			fmt.Fprintf(os.Stderr, "warning: %s failed: %v\n", f.Platform, f.Err)
		}
		out["failed_platforms"] = failed
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// aggregateFailure applies the same total-failure policy as the HTTP query
// boundary: every requested platform failing is a hard error, not an empty
// result.
func aggregateFailure(query types.SearchQuery, failures []scrape.Failure) error {
	if len(query.Platforms) > 0 && len(failures) >= len(query.Platforms) {
		return &search.AggregateError{Failures: failures}
	}
	return nil
}

// applyBlacklist loads the user's blacklist from the database and drops
// postings from excluded companies.
func applyBlacklist(ctx context.Context, rawUserID string, postings []types.Posting) ([]types.Posting, error) {
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID: %w", err)
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required with --user")
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	entries, err := database.ListBlacklist(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load blacklist: %w", err)
	}
	return exclusion.Filter(postings, entries), nil
}
