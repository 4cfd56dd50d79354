// Package scrape implements the job board extraction pipeline: data-driven
// platform descriptors, headless page rendering, DOM extraction of raw
// posting records, normalization, and concurrent fan-out across platforms.
package scrape

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/mgarcia/jobscout/internal/schemas"
	"github.com/mgarcia/jobscout/internal/types"
)

// PlatformsSchemaFile is the repo-relative path of the descriptor schema.
const PlatformsSchemaFile = "schemas/platforms.schema.json"

// Descriptor captures everything platform-specific about one job board:
// how to build its search URL, which marker signals that results rendered,
// and which selectors pull the posting fields out of a result card.
// Extraction itself is a single generic routine dispatched over descriptors.
type Descriptor struct {
	Platform         types.Platform `json:"platform"`
	SearchURL        string         `json:"search_url"`
	TitleParam       string         `json:"title_param"`
	LocationParam    string         `json:"location_param"`
	ResultMarker     string         `json:"result_marker"`
	ItemSelector     string         `json:"item_selector"`
	TitleSelector    string         `json:"title_selector"`
	CompanySelector  string         `json:"company_selector"`
	LocationSelector string         `json:"location_selector"`
	LinkSelector     string         `json:"link_selector"`

	// LinkBase is prefixed to relative hrefs. Empty means the platform
	// already emits absolute links.
	LinkBase string `json:"link_base,omitempty"`
}

// BuildSearchURL percent-encodes the job title and location into the
// platform's query parameters.
func (d Descriptor) BuildSearchURL(jobTitle, location string) string {
	params := url.Values{}
	params.Set(d.TitleParam, jobTitle)
	params.Set(d.LocationParam, location)
	return d.SearchURL + "?" + params.Encode()
}

// ResolveLink turns a scraped href into an absolute URL. Hrefs that already
// carry a scheme pass through; relative paths get the platform's LinkBase.
func (d Descriptor) ResolveLink(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	if parsed, err := url.Parse(href); err == nil && parsed.IsAbs() {
		return href
	}
	return d.LinkBase + href
}

// Registry maps platform tags to their descriptors.
type Registry map[types.Platform]Descriptor

// BuiltinRegistry returns the descriptors shipped with the binary.
func BuiltinRegistry() Registry {
	return Registry{
		types.PlatformLinkedIn: {
			Platform:         types.PlatformLinkedIn,
			SearchURL:        "https://www.linkedin.com/jobs/search/",
			TitleParam:       "keywords",
			LocationParam:    "location",
			ResultMarker:     ".jobs-search__results-list",
			ItemSelector:     ".jobs-search__results-list > li",
			TitleSelector:    ".base-search-card__title",
			CompanySelector:  ".base-search-card__subtitle",
			LocationSelector: ".job-search-card__location",
			LinkSelector:     "a",
		},
		types.PlatformIndeed: {
			Platform:         types.PlatformIndeed,
			SearchURL:        "https://www.indeed.com/jobs",
			TitleParam:       "q",
			LocationParam:    "l",
			ResultMarker:     ".job_seen_beacon",
			ItemSelector:     ".job_seen_beacon",
			TitleSelector:    ".jobTitle",
			CompanySelector:  ".companyName",
			LocationSelector: ".companyLocation",
			LinkSelector:     "a",
			LinkBase:         "https://www.indeed.com",
		},
	}
}

// LoadRegistry returns the built-in registry overlaid with descriptors from
// an optional JSON file. The file is validated against the platforms schema
// before any descriptor is accepted; a schema violation is a startup error,
// not a silently ignored entry. An empty path returns the built-ins.
func LoadRegistry(path string) (Registry, error) {
	registry := BuiltinRegistry()
	if path == "" {
		return registry, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read platforms file %s: %w", path, err)
	}

	schemaPath := schemas.ResolveSchemaPath(PlatformsSchemaFile)
	if schemaPath == "" {
		return nil, fmt.Errorf("platforms schema not found: %s", PlatformsSchemaFile)
	}
	if err := schemas.ValidateBytes(schemaPath, data); err != nil {
		return nil, fmt.Errorf("invalid platforms file %s: %w", path, err)
	}

	var descriptors []Descriptor
	if err := json.Unmarshal(data, &descriptors); err != nil {
		return nil, fmt.Errorf("failed to parse platforms file %s: %w", path, err)
	}

	for _, desc := range descriptors {
		// A tag outside the known platforms would be dead config: no query
		// can ever select it. Fail at load time rather than store it.
		platform, ok := types.ParsePlatform(string(desc.Platform))
		if !ok {
			return nil, fmt.Errorf("invalid platforms file %s: unknown platform tag %q", path, desc.Platform)
		}
		registry[platform] = desc
	}
	return registry, nil
}
