// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/mgarcia/jobscout/internal/scrape"
	"github.com/mgarcia/jobscout/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintQuery outputs the effective search query after defaults were applied.
func (p *Printer) PrintQuery(query types.SearchQuery) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Title:     %s\n", query.JobTitle))
	sb.WriteString(fmt.Sprintf("Location:  %s\n", query.Location))

	names := make([]string, 0, len(query.Platforms))
	for _, platform := range query.Platforms {
		names = append(names, string(platform))
	}
	sb.WriteString(fmt.Sprintf("Platforms: %s", strings.Join(names, ", ")))

	p.printBox("SEARCH QUERY", sb.String())
}

// PrintResults outputs a per-platform summary of the aggregated postings
// plus a sample of the postings themselves.
func (p *Printer) PrintResults(postings []types.Posting, failures []scrape.Failure) {
	var sb strings.Builder

	perPlatform := make(map[types.Platform]int)
	for _, posting := range postings {
		perPlatform[posting.Platform]++
	}

	sb.WriteString(fmt.Sprintf("Total postings: %d\n", len(postings)))
	for _, platform := range types.AllPlatforms() {
		if count, ok := perPlatform[platform]; ok {
			sb.WriteString(fmt.Sprintf("  %s: %d\n", platform, count))
		}
	}
	for _, f := range failures {
		sb.WriteString(fmt.Sprintf("  %s: FAILED (%v)\n", f.Platform, f.Err))
	}

	if len(postings) > 0 {
		sb.WriteString("\n")
		count := min(len(postings), maxItemsToShow)
		for i := 0; i < count; i++ {
			posting := postings[i]
			sb.WriteString(fmt.Sprintf("  • %s", posting.Title))
			if posting.Company != "" {
				sb.WriteString(fmt.Sprintf(" @ %s", posting.Company))
			}
			sb.WriteString("\n")
		}
		if len(postings) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(postings)-maxItemsToShow))
		}
	}

	p.printBox("SEARCH RESULTS", strings.TrimSuffix(sb.String(), "\n"))
}
