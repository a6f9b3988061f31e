// Scheduling HTTP handler.
//
// This file exposes the endpoint that books a partner telehealth visit:
//   - POST /scheduling  (validate record, call partner booking API)
//
// Every response, success or failure, wraps its detail in a schedulingData
// object whose uppercase `status` string is the client-facing outcome. Partner
// rejections stay HTTP 400 to keep them distinct from unexpected internal
// failures (500).
package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/curalife/intake-backend/internal/beluga"
	"github.com/curalife/intake-backend/internal/domain"
	"github.com/curalife/intake-backend/internal/http/middleware"
	"github.com/curalife/intake-backend/internal/services"
)

// SchedulingData is the detail object carried by every scheduling response.
// Which fields are populated depends on Status.
type SchedulingData struct {
	Status string `json:"status"`

	// Success fields.
	ScheduleLink  string `json:"scheduleLink,omitempty"`
	MasterID      string `json:"masterId,omitempty"`
	Message       string `json:"message,omitempty"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	CustomerName  string `json:"customerName,omitempty"`

	// Failure diagnostics.
	Error         string   `json:"error,omitempty"`
	MissingFields []string `json:"missingFields,omitempty"`
	BelugaStatus  int      `json:"belugaStatus,omitempty"`
	RawResponse   string   `json:"rawResponse,omitempty"`
}

// SchedulingResponse is the envelope for the scheduling endpoint.
type SchedulingResponse struct {
	Success        bool           `json:"success"`
	SchedulingData SchedulingData `json:"schedulingData"`
}

// Schedule validates the posted intake record, transforms it into the partner
// payload, and calls the partner booking endpoint synchronously.
func (h *Handlers) Schedule(c *gin.Context) {
	var rec domain.IntakeRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		schedFail(c, http.StatusBadRequest, SchedulingData{
			Status: StatusValidationError,
			Error:  "invalid JSON body",
		})
		return
	}

	data, err := h.schedSvc.Schedule(c.Request.Context(), &rec)
	if err != nil {
		h.respondSchedulingError(c, &rec, err)
		return
	}

	ok(c, http.StatusOK, SchedulingResponse{
		Success: true,
		SchedulingData: SchedulingData{
			Status:        StatusScheduled,
			ScheduleLink:  data.ScheduleLink,
			MasterID:      data.MasterID,
			Message:       data.Message,
			CustomerEmail: data.CustomerEmail,
			CustomerName:  data.CustomerName,
			BelugaStatus:  data.PartnerStatus,
		},
	})
}

// respondSchedulingError maps the service error taxonomy onto HTTP statuses
// and schedulingData shapes. Partner-call failures keep their diagnostic
// detail (embedded status code, raw body) so support can see what the partner
// actually returned.
func (h *Handlers) respondSchedulingError(c *gin.Context, rec *domain.IntakeRecord, err error) {
	var (
		verr *services.ValidationError
		cerr *services.ConfigError
		terr *services.TransformError
		perr *beluga.PartnerError
	)

	switch {
	case errors.As(err, &verr):
		schedFail(c, http.StatusBadRequest, SchedulingData{
			Status:        StatusValidationError,
			Error:         "Missing required fields: " + strings.Join(verr.Missing, ", "),
			MissingFields: verr.Missing,
		})
	case errors.As(err, &cerr):
		schedFail(c, http.StatusInternalServerError, SchedulingData{
			Status: StatusConfigError,
			Error:  cerr.Reason,
		})
	case errors.As(err, &terr):
		schedFail(c, http.StatusInternalServerError, SchedulingData{
			Status: StatusServerError,
			Error:  terr.Error(),
		})
	case errors.As(err, &perr):
		schedFail(c, http.StatusBadRequest, SchedulingData{
			Status:        StatusBelugaError,
			Error:         perr.Message,
			BelugaStatus:  perr.StatusCode,
			RawResponse:   perr.RawBody,
			CustomerEmail: rec.CustomerEmail,
			CustomerName:  rec.CustomerName(),
		})
	default:
		schedFail(c, http.StatusInternalServerError, SchedulingData{
			Status: StatusServerError,
			Error:  err.Error(),
		})
	}
}

// schedFail aborts the request with a scheduling failure envelope, logging
// server-side statuses with request context.
func schedFail(c *gin.Context, status int, data SchedulingData) {
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("scheduling_status", data.Status).
			Str("message", data.Error).
			Msg("scheduling error")
	}
	c.AbortWithStatusJSON(status, SchedulingResponse{Success: false, SchedulingData: data})
}
