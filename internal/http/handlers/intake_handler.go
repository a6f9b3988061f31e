// Intake HTTP handler.
//
// This file exposes the endpoint that kicks off the telehealth intake
// pipeline:
//   - POST /intake  (start workflow, return tracking id)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses.
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/curalife/intake-backend/internal/domain"
	"github.com/curalife/intake-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// IntakeService starts a workflow execution for a customer submission.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type IntakeService interface {
	// Trigger starts one workflow execution carrying the submission and
	// returns the tracking identifier the client polls with.
	Trigger(ctx context.Context, submission map[string]any) (*services.IntakeResult, error)
}

// SchedulingService books a partner visit for a validated intake record.
type SchedulingService interface {
	// Schedule validates the record, builds the partner payload, and calls
	// the booking endpoint.
	Schedule(ctx context.Context, rec *domain.IntakeRecord) (*services.SchedulingData, error)
}

// StatusService reports workflow progress for a tracking identifier.
type StatusService interface {
	// Report returns the current status document for the tracking id.
	Report(ctx context.Context, trackingID string) (*domain.StatusDocument, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for intake, scheduling, and status.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	intakeSvc IntakeService
	schedSvc  SchedulingService
	statusSvc StatusService
}

// New constructs and returns a Handlers instance bound to the given services.
func New(intakeSvc IntakeService, schedSvc SchedulingService, statusSvc StatusService) *Handlers {
	return &Handlers{intakeSvc: intakeSvc, schedSvc: schedSvc, statusSvc: statusSvc}
}

//
// DTOs
//

// IntakeResponse is the immediate reply to an accepted submission. The
// workflow keeps running after this response is sent; clients poll the status
// endpoint with StatusTrackingID.
type IntakeResponse struct {
	Success          bool   `json:"success"`
	StatusTrackingID string `json:"statusTrackingId"`
	Message          string `json:"message"`
	ExecutionName    string `json:"executionName"`
	CustomerEmail    string `json:"customerEmail,omitempty"`
	Timestamp        any    `json:"timestamp,omitempty"`
}

//
// Handlers
//

// TriggerIntake accepts an arbitrary submission object, starts the workflow,
// and returns the derived tracking identifier without waiting for completion.
func (h *Handlers) TriggerIntake(c *gin.Context) {
	var submission map[string]any
	if err := c.ShouldBindJSON(&submission); err != nil {
		fail(c, http.StatusBadRequest, "", "invalid JSON body")
		return
	}

	res, err := h.intakeSvc.Trigger(c.Request.Context(), submission)
	if err != nil {
		var oerr *services.OrchestrationError
		switch {
		case errors.Is(err, services.ErrInvalidRequest):
			fail(c, http.StatusBadRequest, "", "request body must be a non-empty JSON object")
		case errors.As(err, &oerr):
			fail(c, http.StatusInternalServerError, ErrTypeOrchestrator, oerr.Error())
		default:
			fail(c, http.StatusInternalServerError, ErrTypeInternal, err.Error())
		}
		return
	}

	ok(c, http.StatusOK, IntakeResponse{
		Success:          true,
		StatusTrackingID: res.StatusTrackingID,
		Message:          "Workflow started with status tracking",
		ExecutionName:    res.ExecutionName,
		CustomerEmail:    res.CustomerEmail,
		Timestamp:        res.Timestamp,
	})
}
