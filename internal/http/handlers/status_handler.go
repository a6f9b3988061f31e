// Status HTTP handler.
//
// This file exposes the workflow progress endpoint:
//   - GET  /status?statusTrackingId=...   (query param)
//   - POST /status {"statusTrackingId"}   (JSON body)
//
// Both variants answer with the same envelope; GET exists for simple browser
// polling, POST for clients that keep the id out of URLs.
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/curalife/intake-backend/internal/domain"
	"github.com/curalife/intake-backend/internal/http/middleware"
	"github.com/curalife/intake-backend/internal/services"
	"github.com/curalife/intake-backend/internal/status"
)

// StatusRequest is the JSON payload accepted by the POST variant.
type StatusRequest struct {
	StatusTrackingID string `json:"statusTrackingId"`
}

// StatusResponse wraps a status document for one tracking identifier.
type StatusResponse struct {
	Success          bool                   `json:"success"`
	StatusData       *domain.StatusDocument `json:"statusData"`
	StatusTrackingID string                 `json:"statusTrackingId"`
}

// GetStatus serves the query-parameter variant.
func (h *Handlers) GetStatus(c *gin.Context) {
	h.reportStatus(c, c.Query("statusTrackingId"))
}

// PostStatus serves the JSON-body variant.
func (h *Handlers) PostStatus(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "", "invalid JSON body")
		return
	}
	h.reportStatus(c, req.StatusTrackingID)
}

// reportStatus is the shared core of both variants: it requires a non-blank
// tracking id, asks the status service for the current document, and maps the
// store-read taxonomy onto HTTP statuses.
func (h *Handlers) reportStatus(c *gin.Context, trackingID string) {
	trackingID = strings.TrimSpace(trackingID)
	if trackingID == "" {
		fail(c, http.StatusBadRequest, "", "statusTrackingId is required")
		return
	}

	doc, err := h.statusSvc.Report(c.Request.Context(), trackingID)
	if err != nil {
		resp := ErrorResponse{Success: false, StatusTrackingID: trackingID}
		switch {
		case errors.Is(err, services.ErrInvalidRequest):
			resp.Error = "statusTrackingId is required"
			c.AbortWithStatusJSON(http.StatusBadRequest, resp)
		case errors.Is(err, status.ErrNotFound):
			resp.Error = "no status found for this tracking id"
			c.AbortWithStatusJSON(http.StatusNotFound, resp)
		case errors.Is(err, status.ErrCorrupt):
			resp.Error = "stored status is unreadable"
			resp.Type = ErrTypeStatusPolling
			statusFail(c, resp)
		case errors.Is(err, status.ErrUnavailable):
			resp.Error = "status store unavailable"
			resp.Type = ErrTypeStatusPolling
			statusFail(c, resp)
		default:
			resp.Error = err.Error()
			resp.Type = ErrTypeStatusPolling
			statusFail(c, resp)
		}
		return
	}

	ok(c, http.StatusOK, StatusResponse{
		Success:          true,
		StatusData:       doc,
		StatusTrackingID: trackingID,
	})
}

// statusFail writes a 500 polling error with request-scoped logging.
func statusFail(c *gin.Context, resp ErrorResponse) {
	lg := middleware.LoggerFrom(c)
	lg.Error().
		Str("tracking_id", resp.StatusTrackingID).
		Str("message", resp.Error).
		Msg("status polling error")
	c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
}
