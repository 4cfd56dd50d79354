// Package exclusion removes postings from employers a user has blacklisted.
package exclusion

import (
	"context"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"golang.org/x/text/cases"

	"github.com/mgarcia/jobscout/internal/types"
)

// Store reads one user's blacklist. Lookups are scoped strictly to the
// owner; the filter never sees another user's entries.
type Store interface {
	ListBlacklist(ctx context.Context, ownerID uuid.UUID) ([]types.BlacklistEntry, error)
}

// FoldName returns the case-folded comparison key for a company name.
// Unicode case folding, not ASCII lowercasing, so "Straße" and "STRASSE"
// compare equal.
func FoldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// Filter retains postings whose company is not on the blacklist. The
// comparison is a case-folded exact match on the canonical company field.
// Surviving postings keep their input order, and an empty blacklist returns
// the input unchanged.
func Filter(postings []types.Posting, entries []types.BlacklistEntry) []types.Posting {
	if len(entries) == 0 {
		return postings
	}

	blocked := mapset.NewThreadUnsafeSet[string]()
	for _, entry := range entries {
		blocked.Add(FoldName(entry.CompanyName))
	}

	kept := make([]types.Posting, 0, len(postings))
	for _, posting := range postings {
		if blocked.Contains(FoldName(posting.Company)) {
			continue
		}
		kept = append(kept, posting)
	}
	return kept
}
