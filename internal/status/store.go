// Package status reads workflow progress for a tracking identifier.
//
// Two reporting strategies exist. The durable strategy reads status documents
// the workflow engine writes into an external store keyed by
// "status/{trackingId}.json" and passes them through verbatim. The heuristic
// strategy, for deployments without a durable store, synthesizes progress
// from the time elapsed since the instant embedded in the tracking id.
package status

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/curalife/intake-backend/internal/domain"
)

// Sentinel errors for durable-store reads. Backends wrap these so callers can
// map them to HTTP results with errors.Is.
var (
	// ErrNotFound: no document exists for the tracking id.
	ErrNotFound = errors.New("status document not found")
	// ErrCorrupt: a document exists but does not parse as a status document.
	ErrCorrupt = errors.New("status document is corrupt")
	// ErrUnavailable: the store could not be reached.
	ErrUnavailable = errors.New("status store unavailable")
)

// Store reads the status document for a tracking identifier from a durable
// backend. Implementations must honor ctx for cancellation and return errors
// wrapping the sentinels above.
type Store interface {
	Get(ctx context.Context, trackingID string) (*domain.StatusDocument, error)
}

// ObjectKey derives the store key for a tracking identifier. The workflow
// engine writes under the same derivation; the two sides must agree.
func ObjectKey(trackingID string) string {
	return "status/" + trackingID + ".json"
}

// decode parses raw store content into a status document.
func decode(raw []byte) (*domain.StatusDocument, error) {
	var doc domain.StatusDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &doc, nil
}
