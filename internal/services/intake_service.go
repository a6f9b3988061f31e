// Package services – IntakeService
//
// IntakeService fronts the workflow engine: it accepts an arbitrary customer
// submission, fires one workflow execution, derives the status-tracking
// identifier, and returns immediately. It never waits for the workflow and
// keeps no local state; progress is observed later through StatusService
// under the same tracking identifier.
package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/curalife/intake-backend/internal/tracking"
	"github.com/curalife/intake-backend/internal/workflow"
)

// IntakeResult is the immediate response to a trigger call.
type IntakeResult struct {
	StatusTrackingID string
	ExecutionName    string
	CustomerEmail    string
	// Timestamp echoes the submission's own timestamp field when present.
	Timestamp any
}

// IntakeService starts workflow executions for customer submissions.
type IntakeService struct {
	Starter workflow.Starter
	// StartTimeout bounds the workflow-start call.
	StartTimeout time.Duration
	// Now is the clock used for tracking-id derivation; nil means time.Now.
	Now func() time.Time

	Log zerolog.Logger
}

// Trigger validates the submission, starts a workflow execution carrying it,
// and derives the tracking identifier the client will poll with.
//
// Failures: ErrInvalidRequest for an empty submission, *OrchestrationError
// when the engine refuses the start. A started execution is never rolled
// back.
func (s *IntakeService) Trigger(ctx context.Context, submission map[string]any) (*IntakeResult, error) {
	if len(submission) == 0 {
		return nil, ErrInvalidRequest
	}

	argument, err := json.Marshal(submission)
	if err != nil {
		return nil, &OrchestrationError{Err: err}
	}

	timeout := s.StartTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	sctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	executionName, err := s.Starter.Start(sctx, argument)
	if err != nil {
		return nil, &OrchestrationError{Err: err}
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	trackingID := tracking.NewID(now())

	email, _ := submission["customerEmail"].(string)
	s.Log.Info().
		Str("execution", executionName).
		Str("tracking_id", trackingID).
		Msg("workflow execution started")

	return &IntakeResult{
		StatusTrackingID: trackingID,
		ExecutionName:    executionName,
		CustomerEmail:    email,
		Timestamp:        submission["timestamp"],
	}, nil
}
