package types

// Posting is a single normalized job listing produced by the pipeline.
// Postings are request-scoped values: they are built per query, never
// persisted, and never mutated after construction.
//
// Title and Platform are always non-empty once a posting leaves the
// normalizer; Company, Location, and URL default to the empty string when a
// source yields nothing for them.
type Posting struct {
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Location string   `json:"location"`
	URL      string   `json:"url"`
	Platform Platform `json:"platform"`
}
