// Package types defines the canonical data model shared across the job
// aggregation pipeline: platforms, search queries, postings, and blacklist
// entries.
package types

import "strings"

// Platform identifies one external job board the aggregator knows how to query.
type Platform string

const (
	// PlatformLinkedIn is the LinkedIn jobs search.
	PlatformLinkedIn Platform = "LINKEDIN"
	// PlatformIndeed is the Indeed jobs search.
	PlatformIndeed Platform = "INDEED"
)

// AllPlatforms returns every integrated platform in a stable order.
func AllPlatforms() []Platform {
	return []Platform{PlatformLinkedIn, PlatformIndeed}
}

// ParsePlatform maps a user-supplied platform string (any case) to a known
// Platform tag. Returns false for unrecognized values.
func ParsePlatform(s string) (Platform, bool) {
	switch Platform(strings.ToUpper(strings.TrimSpace(s))) {
	case PlatformLinkedIn:
		return PlatformLinkedIn, true
	case PlatformIndeed:
		return PlatformIndeed, true
	}
	return "", false
}

// String returns the platform tag.
func (p Platform) String() string {
	return string(p)
}
