// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all endpoints,
// including the structured error envelope, consistent JSON serialization, and
// helpers for common HTTP patterns. Every response carries a boolean `success`
// discriminator so browser clients can branch without inspecting HTTP status
// codes.
//
// Conventions:
//   - All generic error responses return an ErrorResponse with `success:false`.
//   - `fail()` centralizes error logging and formatting, ensuring 5xx responses
//     are logged with request context for observability.
//   - `ok()` writes success responses in a consistent shape across handlers.
//
// Example error response:
//
//	HTTP/1.1 500 Internal Server Error
//	{
//	  "success": false,
//	  "error": "workflow start failed",
//	  "type": "orchestrator_error"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/curalife/intake-backend/internal/http/middleware"
)

// ErrorResponse is the generic error envelope for the intake and status
// endpoints. The scheduling endpoint wraps its failures in SchedulingResponse
// instead so the status string travels inside schedulingData.
type ErrorResponse struct {
	// Success is always false on this envelope.
	Success bool `json:"success"`
	// Error is a human-readable description, safe for display to users.
	Error string `json:"error"`
	// Type is an optional machine-readable tag (see errors.go constants).
	Type string `json:"type,omitempty"`
	// StatusTrackingID echoes the queried tracking id when one was supplied.
	StatusTrackingID string `json:"statusTrackingId,omitempty"`
}

// fail aborts the request with a structured error envelope.
//
// Server errors (>=500) are logged using the request-scoped logger from
// middleware so the correlation id travels with the entry.
func fail(c *gin.Context, status int, errType, msg string) {
	resp := ErrorResponse{
		Success: false,
		Error:   msg,
		Type:    errType,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("type", errType).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail().
//
// External packages (e.g., router setup) should call Fail to return
// consistent error envelopes without directly depending on unexported helpers.
func Fail(c *gin.Context, status int, errType, msg string) { fail(c, status, errType, msg) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
