package source

import (
	"context"
	"fmt"

	"github.com/dmarrero/whalewatch/internal/model"
)

// Adapter fetches and normalizes events from one upstream feed.
type Adapter interface {
	// Name returns the short source label, used in logs and metrics.
	Name() string
	// Fetch returns the normalized events from one poll. Malformed items
	// are skipped, not returned as errors; a non-nil error means the whole
	// fetch failed and the source produced nothing this cycle.
	Fetch(ctx context.Context) ([]model.Event, error)
}

// NormalizeError describes a single raw item that could not be normalized.
type NormalizeError struct {
	Source model.Source
	Reason string
	Err    error
}

func (e *NormalizeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("normalize %s item: %s: %v", e.Source, e.Reason, e.Err)
	}
	return fmt.Sprintf("normalize %s item: %s", e.Source, e.Reason)
}

func (e *NormalizeError) Unwrap() error {
	return e.Err
}

func normalizeErr(src model.Source, reason string, err error) *NormalizeError {
	return &NormalizeError{Source: src, Reason: reason, Err: err}
}
