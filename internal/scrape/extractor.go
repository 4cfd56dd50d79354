package scrape

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/mgarcia/jobscout/internal/types"
)

// Record is one raw, platform-shaped posting prior to normalization. Fields
// a result card did not carry are empty strings; a missing sub-field never
// fails the extraction, only total failure to find the result container does.
type Record struct {
	Title    string
	Company  string
	Location string
	URL      string
	Platform types.Platform
}

// Extractor runs the generic extraction routine for any platform descriptor.
type Extractor struct {
	renderer Renderer
	timeout  time.Duration
}

// NewExtractor builds an extractor over the given renderer. A non-positive
// timeout falls back to DefaultRenderTimeout.
func NewExtractor(renderer Renderer, timeout time.Duration) *Extractor {
	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	return &Extractor{renderer: renderer, timeout: timeout}
}

// Extract renders the platform's search page for the query and reads one
// Record per result card. All failures come back as *ExtractionError
// carrying the platform tag.
func (e *Extractor) Extract(ctx context.Context, desc Descriptor, query types.SearchQuery) ([]Record, error) {
	searchURL := desc.BuildSearchURL(query.JobTitle, query.Location)

	html, err := e.renderer.Render(ctx, searchURL, desc.ResultMarker, e.timeout)
	if err != nil {
		return nil, &ExtractionError{Platform: desc.Platform, Cause: err}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ExtractionError{
			Platform: desc.Platform,
			Cause:    fmt.Errorf("failed to parse rendered HTML: %w", err),
		}
	}

	if doc.Find(desc.ResultMarker).Length() == 0 {
		return nil, &ExtractionError{
			Platform: desc.Platform,
			Cause:    fmt.Errorf("result marker %q not found in rendered page", desc.ResultMarker),
		}
	}

	records := make([]Record, 0)
	doc.Find(desc.ItemSelector).Each(func(_ int, card *goquery.Selection) {
		rec := Record{
			Platform: desc.Platform,
			Title:    strings.TrimSpace(card.Find(desc.TitleSelector).First().Text()),
			Company:  strings.TrimSpace(card.Find(desc.CompanySelector).First().Text()),
			Location: strings.TrimSpace(card.Find(desc.LocationSelector).First().Text()),
		}
		if href, ok := card.Find(desc.LinkSelector).First().Attr("href"); ok {
			rec.URL = desc.ResolveLink(href)
		}
		records = append(records, rec)
	})

	return records, nil
}
