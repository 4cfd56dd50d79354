// Package search exposes the aggregation pipeline behind the authenticated
// query boundary: orchestrate extraction, normalize, de-duplicate, filter.
package search

import (
	"fmt"
	"strings"

	"github.com/mgarcia/jobscout/internal/scrape"
)

// ErrUnauthorized indicates the request carried no resolved requester
// identity. It is raised before any extraction starts, so an
// unauthenticated request never costs a browser session.
type ErrUnauthorized struct{}

func (e *ErrUnauthorized) Error() string {
	return "unauthorized: request has no resolved requester identity"
}

// AggregateError indicates every requested platform failed. Returning an
// empty posting list here would be indistinguishable from "no jobs found",
// so total failure is a hard error, not an empty success.
type AggregateError struct {
	Failures []scrape.Failure
}

func (e *AggregateError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		parts = append(parts, fmt.Sprintf("%s: %v", f.Platform, f.Err))
	}
	return fmt.Sprintf("all %d requested platforms failed: %s", len(e.Failures), strings.Join(parts, "; "))
}
