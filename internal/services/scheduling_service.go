// Package services – SchedulingService
//
// SchedulingService validates a customer intake record, flattens it into the
// partner's visit payload, and books an appointment through the Beluga API.
// Environment selection (staging vs production) is driven by the request's
// testMode flag; credentials for each environment are wired at boot.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/curalife/intake-backend/internal/beluga"
	"github.com/curalife/intake-backend/internal/domain"
)

// PartnerCaller is the slice of the Beluga client the service depends on.
type PartnerCaller interface {
	CreateVisit(ctx context.Context, payload map[string]string) (*beluga.Booking, error)
}

// SchedulingData is the successful booking outcome surfaced to the client.
type SchedulingData struct {
	ScheduleLink  string
	MasterID      string
	PartnerStatus int
	Message       string
	CustomerEmail string
	CustomerName  string
}

// SchedulingService books partner appointments for validated intake records.
type SchedulingService struct {
	// Production and Staging are the per-environment partner clients. A nil
	// client means the corresponding credential was not deployed.
	Production PartnerCaller
	Staging    PartnerCaller

	// CallTimeout bounds the partner call. The partner endpoint is
	// synchronous and slow, so the bound matters.
	CallTimeout time.Duration
	// Now is the clock for master-id generation; nil means time.Now.
	Now func() time.Time

	Log zerolog.Logger
}

// Schedule validates rec, builds the visit payload, and books the visit.
//
// Failures: *ValidationError (all missing fields listed), *ConfigError
// (environment credential absent), *TransformError (mandatory payload field
// empty after the transform), or a *beluga.PartnerError from the call itself.
// No outcome is retried here.
func (s *SchedulingService) Schedule(ctx context.Context, rec *domain.IntakeRecord) (*SchedulingData, error) {
	if missing := rec.MissingFields(); len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	client := s.Production
	env := "production"
	if rec.TestMode {
		client = s.Staging
		env = "staging"
	}
	if client == nil {
		return nil, &ConfigError{Reason: "no Beluga credential configured for the " + env + " environment"}
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	masterID := beluga.MasterID(now(), rec.CustomerEmail)

	payload := beluga.BuildPayload(rec, masterID)
	if empty := beluga.EmptyMandatory(payload); len(empty) > 0 {
		return nil, &TransformError{Fields: empty}
	}

	timeout := s.CallTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	booking, err := client.CreateVisit(cctx, payload)
	if err != nil {
		return nil, err
	}

	// Prefer the partner's master id when it echoes one back.
	if booking.MasterID != "" {
		masterID = booking.MasterID
	}
	s.Log.Info().
		Str("env", env).
		Str("master_id", masterID).
		Msg("appointment scheduled")

	return &SchedulingData{
		ScheduleLink:  booking.ScheduleLink,
		MasterID:      masterID,
		PartnerStatus: booking.PartnerStatus,
		Message:       "Appointment scheduling link generated successfully",
		CustomerEmail: rec.CustomerEmail,
		CustomerName:  rec.CustomerName(),
	}, nil
}
