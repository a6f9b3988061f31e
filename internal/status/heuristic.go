package status

import (
	"time"

	"github.com/curalife/intake-backend/internal/domain"
	"github.com/curalife/intake-backend/internal/tracking"
)

// Elapsed-time buckets for synthesized progress. The thresholds are
// placeholder constants with no link to real workflow duration; they exist so
// the storefront poller sees movement while a deployment runs without a
// durable store.
const (
	processingUntil = 5 * time.Second
	validatingUntil = 10 * time.Second
	finalizingUntil = 15 * time.Second
)

// Heuristic synthesizes a status document from the time elapsed since the
// instant embedded in a tracking identifier. It holds no state and is safe
// for concurrent use.
type Heuristic struct {
	// Now is the clock; defaults to time.Now when nil (tests pin it).
	Now func() time.Time
}

// Report builds the synthetic document for a tracking identifier. An
// identifier that does not parse as an instant yields the terminal
// completed/100 document: the poller must never be shown an error for a
// malformed id, only a finished workflow.
func (h *Heuristic) Report(trackingID string) *domain.StatusDocument {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	at := now()

	doc := &domain.StatusDocument{
		StatusTrackingID: trackingID,
		Timestamp:        float64(at.UnixMicro()) / 1e6,
	}

	elapsed, err := tracking.Elapsed(trackingID, at)
	if err != nil {
		doc.CurrentStep = domain.StepCompleted
		doc.Progress = 100
		doc.Message = "Process completed successfully"
		doc.Completed = true
		return doc
	}

	switch {
	case elapsed < processingUntil:
		doc.CurrentStep = domain.StepProcessing
		doc.Progress = 25
		doc.Message = "Processing your information"
	case elapsed < validatingUntil:
		doc.CurrentStep = domain.StepValidating
		doc.Progress = 50
		doc.Message = "Validating eligibility"
	case elapsed < finalizingUntil:
		doc.CurrentStep = domain.StepFinalizing
		doc.Progress = 75
		doc.Message = "Finalizing account creation"
	default:
		doc.CurrentStep = domain.StepCompleted
		doc.Progress = 100
		doc.Message = "Account creation completed successfully"
		doc.Completed = true
	}
	return doc
}
