package search

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgarcia/jobscout/internal/scrape"
	"github.com/mgarcia/jobscout/internal/types"
)

type fakePipeline struct {
	postings []types.Posting
	failures []scrape.Failure
	runs     int
}

func (f *fakePipeline) Run(_ context.Context, _ types.SearchQuery) ([]types.Posting, []scrape.Failure) {
	f.runs++
	return f.postings, f.failures
}

type fakeStore struct {
	entries []types.BlacklistEntry
	err     error
	calls   int
}

func (f *fakeStore) ListBlacklist(_ context.Context, _ uuid.UUID) ([]types.BlacklistEntry, error) {
	f.calls++
	return f.entries, f.err
}

type fakeCache struct {
	stored   map[string][]types.Posting
	getErr   error
	setCalls int
}

func newFakeCache() *fakeCache {
	return &fakeCache{stored: map[string][]types.Posting{}}
}

func (f *fakeCache) Get(_ context.Context, query types.SearchQuery) ([]types.Posting, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	postings, ok := f.stored[query.JobTitle]
	return postings, ok, nil
}

func (f *fakeCache) Set(_ context.Context, query types.SearchQuery, postings []types.Posting) error {
	f.setCalls++
	f.stored[query.JobTitle] = postings
	return nil
}

func posting(title, company, url string, platform types.Platform) types.Posting {
	return types.Posting{Title: title, Company: company, URL: url, Platform: platform}
}

var testUser = uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")

func TestSearch_Unauthorized_NoExtractionAttempted(t *testing.T) {
	pipeline := &fakePipeline{}
	svc := NewService(pipeline, &fakeStore{}, nil)

	_, err := svc.Search(context.Background(), uuid.Nil, types.NewSearchQuery("", "", nil))

	var unauthorized *ErrUnauthorized
	require.ErrorAs(t, err, &unauthorized)
	assert.Equal(t, 0, pipeline.runs, "unauthenticated request must never reach the pipeline")
}

func TestSearch_FiltersBlacklistedCompanies(t *testing.T) {
	pipeline := &fakePipeline{postings: []types.Posting{
		posting("Engineer", "Acme", "https://a/1", types.PlatformLinkedIn),
		posting("Engineer", "Globex", "https://a/2", types.PlatformLinkedIn),
		posting("Engineer", "Initech", "https://b/1", types.PlatformIndeed),
	}}
	store := &fakeStore{entries: []types.BlacklistEntry{{CompanyName: "acme"}}}
	svc := NewService(pipeline, store, nil)

	result, err := svc.Search(context.Background(), testUser, types.NewSearchQuery("Engineer", "Remote", nil))
	require.NoError(t, err)

	require.Len(t, result.Postings, 2)
	assert.Equal(t, "Globex", result.Postings[0].Company)
	assert.Equal(t, "Initech", result.Postings[1].Company)
	assert.Empty(t, result.Failures)
}

func TestSearch_PartialFailureIsMetadata(t *testing.T) {
	pipeline := &fakePipeline{
		postings: []types.Posting{posting("Engineer", "Initech", "https://b/1", types.PlatformIndeed)},
		failures: []scrape.Failure{{Platform: types.PlatformLinkedIn, Err: errors.New("timeout")}},
	}
	svc := NewService(pipeline, &fakeStore{}, nil)

	result, err := svc.Search(context.Background(), testUser, types.NewSearchQuery("", "", nil))
	require.NoError(t, err)

	require.Len(t, result.Postings, 1)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, types.PlatformLinkedIn, result.Failures[0].Platform)
}

func TestSearch_AllPlatformsFailed(t *testing.T) {
	pipeline := &fakePipeline{failures: []scrape.Failure{
		{Platform: types.PlatformLinkedIn, Err: errors.New("timeout")},
		{Platform: types.PlatformIndeed, Err: errors.New("blocked")},
	}}
	svc := NewService(pipeline, &fakeStore{}, nil)

	_, err := svc.Search(context.Background(), testUser, types.NewSearchQuery("", "", nil))

	var aggregate *AggregateError
	require.ErrorAs(t, err, &aggregate)
	assert.Len(t, aggregate.Failures, 2)
}

func TestSearch_SingleRequestedPlatformFailing(t *testing.T) {
	pipeline := &fakePipeline{failures: []scrape.Failure{
		{Platform: types.PlatformIndeed, Err: errors.New("timeout")},
	}}
	svc := NewService(pipeline, &fakeStore{}, nil)

	_, err := svc.Search(context.Background(), testUser,
		types.NewSearchQuery("", "", []types.Platform{types.PlatformIndeed}))

	var aggregate *AggregateError
	assert.ErrorAs(t, err, &aggregate)
}

func TestSearch_DeduplicatesAcrossSources(t *testing.T) {
	pipeline := &fakePipeline{postings: []types.Posting{
		posting("Engineer", "Acme", "https://jobs/1", types.PlatformLinkedIn),
		posting("Engineer", "Acme", "https://jobs/1", types.PlatformIndeed),
		posting("Engineer", "Acme", "", types.PlatformLinkedIn),
		posting("Engineer", "Acme", "", types.PlatformIndeed),
	}}
	svc := NewService(pipeline, &fakeStore{}, nil)

	result, err := svc.Search(context.Background(), testUser, types.NewSearchQuery("", "", nil))
	require.NoError(t, err)

	// URL duplicates collapse to the first occurrence; URL-less postings
	// are never merged with each other.
	require.Len(t, result.Postings, 3)
	assert.Equal(t, types.PlatformLinkedIn, result.Postings[0].Platform)
}

func TestSearch_BlacklistStoreFailureIsHard(t *testing.T) {
	pipeline := &fakePipeline{postings: []types.Posting{
		posting("Engineer", "Acme", "https://a/1", types.PlatformLinkedIn),
	}}
	store := &fakeStore{err: errors.New("connection reset")}
	svc := NewService(pipeline, store, nil)

	_, err := svc.Search(context.Background(), testUser, types.NewSearchQuery("", "", nil))
	assert.Error(t, err)
}

func TestSearch_CacheHitSkipsPipeline(t *testing.T) {
	cached := []types.Posting{posting("Engineer", "Acme", "https://a/1", types.PlatformLinkedIn)}
	cache := newFakeCache()
	cache.stored["Engineer"] = cached

	pipeline := &fakePipeline{}
	svc := NewService(pipeline, &fakeStore{}, cache)

	result, err := svc.Search(context.Background(), testUser, types.NewSearchQuery("Engineer", "Remote", nil))
	require.NoError(t, err)

	assert.Equal(t, 0, pipeline.runs)
	assert.Equal(t, cached, result.Postings)
}

func TestSearch_CacheHitStillFiltersPerUser(t *testing.T) {
	cache := newFakeCache()
	cache.stored["Engineer"] = []types.Posting{
		posting("Engineer", "Acme", "https://a/1", types.PlatformLinkedIn),
		posting("Engineer", "Globex", "https://a/2", types.PlatformLinkedIn),
	}
	store := &fakeStore{entries: []types.BlacklistEntry{{CompanyName: "Acme"}}}
	svc := NewService(&fakePipeline{}, store, cache)

	result, err := svc.Search(context.Background(), testUser, types.NewSearchQuery("Engineer", "Remote", nil))
	require.NoError(t, err)

	require.Len(t, result.Postings, 1)
	assert.Equal(t, "Globex", result.Postings[0].Company)
}

func TestSearch_CacheMissRunsAndStores(t *testing.T) {
	cache := newFakeCache()
	pipeline := &fakePipeline{postings: []types.Posting{
		posting("Engineer", "Acme", "https://a/1", types.PlatformLinkedIn),
	}}
	svc := NewService(pipeline, &fakeStore{}, cache)

	_, err := svc.Search(context.Background(), testUser, types.NewSearchQuery("Engineer", "Remote", nil))
	require.NoError(t, err)

	assert.Equal(t, 1, pipeline.runs)
	assert.Equal(t, 1, cache.setCalls)
}

func TestSearch_PartialResultsNotCached(t *testing.T) {
	cache := newFakeCache()
	pipeline := &fakePipeline{
		postings: []types.Posting{posting("Engineer", "Acme", "https://a/1", types.PlatformLinkedIn)},
		failures: []scrape.Failure{{Platform: types.PlatformIndeed, Err: errors.New("timeout")}},
	}
	svc := NewService(pipeline, &fakeStore{}, cache)

	_, err := svc.Search(context.Background(), testUser, types.NewSearchQuery("Engineer", "Remote", nil))
	require.NoError(t, err)

	assert.Equal(t, 0, cache.setCalls)
}

func TestSearch_CacheErrorDegradesToMiss(t *testing.T) {
	cache := newFakeCache()
	cache.getErr = errors.New("redis unavailable")
	pipeline := &fakePipeline{postings: []types.Posting{
		posting("Engineer", "Acme", "https://a/1", types.PlatformLinkedIn),
	}}
	svc := NewService(pipeline, &fakeStore{}, cache)

	result, err := svc.Search(context.Background(), testUser, types.NewSearchQuery("Engineer", "Remote", nil))
	require.NoError(t, err)

	assert.Equal(t, 1, pipeline.runs)
	assert.Len(t, result.Postings, 1)
}
