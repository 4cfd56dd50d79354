package scrape

import (
	"fmt"

	"github.com/mgarcia/jobscout/internal/types"
)

// ExtractionError reports that one platform's extraction failed: navigation
// error, result marker never appeared within its bound, or unparseable page.
// It is scoped to a single platform and never aborts the other extractions.
type ExtractionError struct {
	Platform types.Platform
	Cause    error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("extraction failed for %s: %v", e.Platform, e.Cause)
	}
	return fmt.Sprintf("extraction failed for %s", e.Platform)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

// Failure pairs a platform with the error that took it out of a query.
// The orchestrator reports failures as metadata alongside partial results.
type Failure struct {
	Platform types.Platform
	Err      error
}
