package search

import (
	"context"
	"fmt"
	"log"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"

	"github.com/mgarcia/jobscout/internal/exclusion"
	"github.com/mgarcia/jobscout/internal/scrape"
	"github.com/mgarcia/jobscout/internal/types"
)

// Pipeline fans extraction out across platforms and returns normalized
// postings plus per-platform failures. *scrape.Orchestrator implements it.
type Pipeline interface {
	Run(ctx context.Context, query types.SearchQuery) ([]types.Posting, []scrape.Failure)
}

// Cache optionally stores merged pre-filter results per query.
type Cache interface {
	Get(ctx context.Context, query types.SearchQuery) ([]types.Posting, bool, error)
	Set(ctx context.Context, query types.SearchQuery, postings []types.Posting) error
}

// Result is one completed search: the filtered postings and the platforms
// that failed along the way. Failures are metadata, not errors; the caller
// decides how loudly to surface them.
type Result struct {
	Postings []types.Posting
	Failures []scrape.Failure
}

// Service is the sole externally callable operation of the aggregation
// core.
type Service struct {
	pipeline  Pipeline
	blacklist exclusion.Store
	cache     Cache // nil disables caching
}

// NewService wires the pipeline behind the query boundary. cache may be nil.
func NewService(pipeline Pipeline, blacklist exclusion.Store, cache Cache) *Service {
	return &Service{pipeline: pipeline, blacklist: blacklist, cache: cache}
}

// Search runs one query for an authenticated requester. The requester must
// be resolved before any extraction is attempted; a nil requester fails
// with ErrUnauthorized immediately. When every requested platform fails the
// search fails with AggregateError; otherwise partial failures ride along
// in Result.Failures and the successful platforms' postings are returned,
// de-duplicated by URL and filtered against the requester's blacklist.
func (s *Service) Search(ctx context.Context, requesterID uuid.UUID, query types.SearchQuery) (*Result, error) {
	if requesterID == uuid.Nil {
		return nil, &ErrUnauthorized{}
	}

	postings, failures, fromCache := s.lookup(ctx, query)
	if !fromCache {
		postings, failures = s.pipeline.Run(ctx, query)

		if len(query.Platforms) > 0 && len(failures) >= len(query.Platforms) {
			return nil, &AggregateError{Failures: failures}
		}

		// Only fully successful runs are cached; a partial result would
		// pin one platform's outage into everyone's next ten minutes.
		if s.cache != nil && len(failures) == 0 {
			if err := s.cache.Set(ctx, query, postings); err != nil {
				log.Printf("[search] cache set failed: %v", err)
			}
		}
	}

	postings = dedupe(postings)

	entries, err := s.blacklist.ListBlacklist(ctx, requesterID)
	if err != nil {
		// Skipping the filter would show the user postings they asked to
		// never see, so a store failure is a hard error.
		return nil, fmt.Errorf("failed to load blacklist: %w", err)
	}

	return &Result{
		Postings: exclusion.Filter(postings, entries),
		Failures: failures,
	}, nil
}

// lookup consults the cache. Cache errors degrade to a miss.
func (s *Service) lookup(ctx context.Context, query types.SearchQuery) ([]types.Posting, []scrape.Failure, bool) {
	if s.cache == nil {
		return nil, nil, false
	}
	postings, ok, err := s.cache.Get(ctx, query)
	if err != nil {
		log.Printf("[search] cache get failed: %v", err)
		return nil, nil, false
	}
	if !ok {
		return nil, nil, false
	}
	return postings, nil, true
}

// dedupe drops repeated URLs across sources, keeping the first occurrence
// and the input order. Postings without a URL are always kept.
func dedupe(postings []types.Posting) []types.Posting {
	seen := mapset.NewThreadUnsafeSet[string]()
	out := make([]types.Posting, 0, len(postings))
	for _, p := range postings {
		if p.URL != "" && !seen.Add(p.URL) {
			continue
		}
		out = append(out, p)
	}
	return out
}
