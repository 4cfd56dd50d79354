package scrape

import (
	"strings"

	"github.com/mgarcia/jobscout/internal/types"
)

// Normalize maps a raw record onto the canonical Posting shape. Pure and
// idempotent: trimming already-trimmed fields is a no-op, so normalizing a
// normalized record changes nothing. Missing fields stay empty strings.
func Normalize(rec Record) types.Posting {
	return types.Posting{
		Title:    strings.TrimSpace(rec.Title),
		Company:  strings.TrimSpace(rec.Company),
		Location: strings.TrimSpace(rec.Location),
		URL:      strings.TrimSpace(rec.URL),
		Platform: rec.Platform,
	}
}

// NormalizeAll normalizes a batch in input order. Records with an empty
// title or platform after trimming are dropped: every posting leaving the
// normalizer carries both, per the pipeline's invariant.
func NormalizeAll(records []Record) []types.Posting {
	postings := make([]types.Posting, 0, len(records))
	for _, rec := range records {
		p := Normalize(rec)
		if p.Title == "" || p.Platform == "" {
			continue
		}
		postings = append(postings, p)
	}
	return postings
}
