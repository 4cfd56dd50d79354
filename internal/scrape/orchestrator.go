package scrape

import (
	"context"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mgarcia/jobscout/internal/types"
)

// Orchestrator fans extraction out across the requested platforms. Each
// platform runs in its own goroutine with its own rendering session; the
// extractions share nothing, so no ordering is guaranteed between platforms
// and none is needed.
type Orchestrator struct {
	extractor *Extractor
	registry  Registry
	verbose   bool
}

// NewOrchestrator builds an orchestrator dispatching over the registry.
func NewOrchestrator(extractor *Extractor, registry Registry, verbose bool) *Orchestrator {
	return &Orchestrator{extractor: extractor, registry: registry, verbose: verbose}
}

// Run extracts and normalizes postings from every platform in the query,
// concurrently. One platform's failure never aborts the others: failed
// platforms are reported in the returned failures, successful ones
// contribute their postings. Cancelling ctx stops all in-flight extractions
// and releases their rendering sessions.
func (o *Orchestrator) Run(ctx context.Context, query types.SearchQuery) ([]types.Posting, []Failure) {
	var (
		mu       sync.Mutex
		postings []types.Posting
		failures []Failure
	)

	// Unknown platforms are collected outside the mutex and merged after
	// Wait; appending to failures here would race with the extraction
	// goroutines already launched.
	var unknown []Failure

	g, gctx := errgroup.WithContext(ctx)
	for _, platform := range query.Platforms {
		desc, ok := o.registry[platform]
		if !ok {
			unknown = append(unknown, Failure{
				Platform: platform,
				Err:      &ExtractionError{Platform: platform, Cause: fmt.Errorf("no descriptor registered")},
			})
			continue
		}

		g.Go(func() error {
			records, err := o.extractor.Extract(gctx, desc, query)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if o.verbose {
					log.Printf("[scrape] %s failed: %v", desc.Platform, err)
				}
				failures = append(failures, Failure{Platform: desc.Platform, Err: err})
				return nil
			}
			postings = append(postings, NormalizeAll(records)...)
			return nil
		})
	}

	// Extraction errors are collected, never returned, so Wait cannot fail.
	_ = g.Wait()

	failures = append(failures, unknown...)
	return postings, failures
}
