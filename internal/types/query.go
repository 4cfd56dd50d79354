package types

const (
	// DefaultJobTitle is substituted when a search request omits the job title.
	DefaultJobTitle = "Software Engineer"
	// DefaultLocation is substituted when a search request omits the location.
	DefaultLocation = "Remote"
)

// SearchQuery describes one job search request. It is immutable once built;
// construct it with NewSearchQuery so defaults are applied exactly once.
type SearchQuery struct {
	JobTitle  string
	Location  string
	Platforms []Platform
}

// NewSearchQuery builds a SearchQuery, filling missing fields with defaults.
// An empty platform list means "all known platforms".
func NewSearchQuery(jobTitle, location string, platforms []Platform) SearchQuery {
	if jobTitle == "" {
		jobTitle = DefaultJobTitle
	}
	if location == "" {
		location = DefaultLocation
	}
	if len(platforms) == 0 {
		platforms = AllPlatforms()
	}
	return SearchQuery{
		JobTitle:  jobTitle,
		Location:  location,
		Platforms: platforms,
	}
}
