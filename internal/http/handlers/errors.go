// Package handlers defines the HTTP-layer status and error vocabulary used
// across all API endpoints.
//
// Two families of constants live here:
//
//   - Scheduling statuses: the uppercase `status` strings embedded in the
//     `schedulingData` object of every scheduling response. Exactly one is
//     present per response; "SCHEDULED" is the only success value.
//   - Error types: lowercase snake_case tags carried in the `type` field of
//     generic error envelopes, letting clients branch on failure origin
//     without parsing human-readable messages.
//
// Handlers select the most specific matching value; the mapping from service
// errors to these constants is centralized in each handler's respond step.
package handlers

// Scheduling response statuses.
const (
	StatusScheduled       = "SCHEDULED"
	StatusValidationError = "VALIDATION_ERROR"
	StatusConfigError     = "CONFIG_ERROR"
	StatusBelugaError     = "BELUGA_ERROR"
	StatusServerError     = "SERVER_ERROR"
)

// Error envelope types.
const (
	ErrTypeOrchestrator  = "orchestrator_error"
	ErrTypeStatusPolling = "status_polling_error"
	ErrTypeInternal      = "internal_error"
)
