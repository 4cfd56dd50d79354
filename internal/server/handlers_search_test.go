package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mgarcia/jobscout/internal/scrape"
	"github.com/mgarcia/jobscout/internal/search"
	"github.com/mgarcia/jobscout/internal/server/middleware"
	"github.com/mgarcia/jobscout/internal/types"
)

type fakeSearchRunner struct {
	result      *search.Result
	err         error
	lastUserID  uuid.UUID
	lastQuery   types.SearchQuery
	searchCount int
}

func (f *fakeSearchRunner) Search(ctx context.Context, requesterID uuid.UUID, query types.SearchQuery) (*search.Result, error) {
	f.searchCount++
	f.lastUserID = requesterID
	f.lastQuery = query
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newTestServer(runner SearchRunner, blacklist BlacklistStore) *Server {
	return &Server{
		search:    runner,
		blacklist: blacklist,
		validator: validator.New(),
	}
}

func authedRequest(method, target string, userID uuid.UUID) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	return req.WithContext(middleware.WithUserID(req.Context(), userID))
}

func TestHandleSearchJobs_ReturnsPostings(t *testing.T) {
	userID := uuid.New()
	runner := &fakeSearchRunner{result: &search.Result{
		Postings: []types.Posting{
			{Title: "Go Developer", Company: "Acme", Location: "Remote", URL: "https://example.com/1", Platform: types.PlatformLinkedIn},
		},
	}}
	s := newTestServer(runner, nil)

	rec := httptest.NewRecorder()
	s.handleSearchJobs(rec, authedRequest(http.MethodGet, "/jobs/search?jobTitle=Go+Developer&location=Berlin", userID))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID, runner.lastUserID)
	assert.Equal(t, "Go Developer", runner.lastQuery.JobTitle)
	assert.Equal(t, "Berlin", runner.lastQuery.Location)

	var body struct {
		Jobs     []types.Posting   `json:"jobs"`
		Failures []failureResponse `json:"failures"`
		Count    int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Jobs, 1)
	assert.Equal(t, 1, body.Count)
	assert.Empty(t, body.Failures)
}

func TestHandleSearchJobs_AppliesQueryDefaults(t *testing.T) {
	runner := &fakeSearchRunner{result: &search.Result{}}
	s := newTestServer(runner, nil)

	rec := httptest.NewRecorder()
	s.handleSearchJobs(rec, authedRequest(http.MethodGet, "/jobs/search", uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, types.DefaultJobTitle, runner.lastQuery.JobTitle)
	assert.Equal(t, types.DefaultLocation, runner.lastQuery.Location)
	assert.ElementsMatch(t, types.AllPlatforms(), runner.lastQuery.Platforms)
}

func TestHandleSearchJobs_SinglePlatformParam(t *testing.T) {
	runner := &fakeSearchRunner{result: &search.Result{}}
	s := newTestServer(runner, nil)

	rec := httptest.NewRecorder()
	s.handleSearchJobs(rec, authedRequest(http.MethodGet, "/jobs/search?platform=indeed", uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []types.Platform{types.PlatformIndeed}, runner.lastQuery.Platforms)
}

func TestHandleSearchJobs_UnknownPlatform(t *testing.T) {
	runner := &fakeSearchRunner{result: &search.Result{}}
	s := newTestServer(runner, nil)

	rec := httptest.NewRecorder()
	s.handleSearchJobs(rec, authedRequest(http.MethodGet, "/jobs/search?platform=monster", uuid.New()))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, runner.searchCount)
}

func TestHandleSearchJobs_PartialFailureMetadata(t *testing.T) {
	runner := &fakeSearchRunner{result: &search.Result{
		Postings: []types.Posting{
			{Title: "SRE", Company: "Globex", Platform: types.PlatformIndeed, URL: "https://example.com/2"},
		},
		Failures: []scrape.Failure{
			{Platform: types.PlatformLinkedIn, Err: fmt.Errorf("marker not found")},
		},
	}}
	s := newTestServer(runner, nil)

	rec := httptest.NewRecorder()
	s.handleSearchJobs(rec, authedRequest(http.MethodGet, "/jobs/search", uuid.New()))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Failures []failureResponse `json:"failures"`
		Count    int               `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Failures, 1)
	assert.Equal(t, types.PlatformLinkedIn, body.Failures[0].Platform)
	assert.Contains(t, body.Failures[0].Error, "marker not found")
	assert.Equal(t, 1, body.Count)
}

func TestHandleSearchJobs_AllPlatformsFailed(t *testing.T) {
	runner := &fakeSearchRunner{err: &search.AggregateError{Failures: []scrape.Failure{
		{Platform: types.PlatformLinkedIn, Err: fmt.Errorf("timeout")},
		{Platform: types.PlatformIndeed, Err: fmt.Errorf("timeout")},
	}}}
	s := newTestServer(runner, nil)

	rec := httptest.NewRecorder()
	s.handleSearchJobs(rec, authedRequest(http.MethodGet, "/jobs/search", uuid.New()))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleSearchJobs_NoUserInContext(t *testing.T) {
	runner := &fakeSearchRunner{result: &search.Result{}}
	s := newTestServer(runner, nil)

	rec := httptest.NewRecorder()
	s.handleSearchJobs(rec, httptest.NewRequest(http.MethodGet, "/jobs/search", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Zero(t, runner.searchCount)
}
