package server

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/mgarcia/jobscout/internal/search"
	"github.com/mgarcia/jobscout/internal/server/middleware"
	"github.com/mgarcia/jobscout/internal/types"
)

// SearchRunner is the query boundary of the aggregation core.
type SearchRunner interface {
	Search(ctx context.Context, requesterID uuid.UUID, query types.SearchQuery) (*search.Result, error)
}

// failureResponse is one failed platform in the search response metadata.
type failureResponse struct {
	Platform types.Platform `json:"platform"`
	Error    string         `json:"error"`
}

// handleSearchJobs runs the aggregation pipeline for the authenticated
// user. Per-platform failures come back as metadata next to the postings;
// only total failure is an error response.
func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		// The middleware should make this unreachable; fail closed anyway.
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	params := r.URL.Query()

	var platforms []types.Platform
	if raw := params.Get("platform"); raw != "" {
		platform, ok := types.ParsePlatform(raw)
		if !ok {
			s.errorResponse(w, http.StatusBadRequest, "Unknown platform: "+raw)
			return
		}
		platforms = []types.Platform{platform}
	}

	query := types.NewSearchQuery(params.Get("jobTitle"), params.Get("location"), platforms)

	result, err := s.search.Search(r.Context(), userID, query)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	failures := make([]failureResponse, 0, len(result.Failures))
	for _, f := range result.Failures {
		failures = append(failures, failureResponse{Platform: f.Platform, Error: f.Err.Error()})
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":     result.Postings,
		"failures": failures,
		"count":    len(result.Postings),
	})
}
