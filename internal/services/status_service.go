// Package services – StatusService
//
// StatusService answers progress queries for a tracking identifier. A
// deployment runs exactly one strategy: durable (read the document the
// workflow engine wrote into the store) or heuristic (synthesize progress
// from the identifier's embedded instant). The store, when configured, is
// authoritative; the heuristic is a degraded fallback for deployments
// without one.
package services

import (
	"context"
	"strings"
	"time"

	"github.com/curalife/intake-backend/internal/domain"
	"github.com/curalife/intake-backend/internal/status"
)

// StatusService reports workflow progress.
type StatusService struct {
	// Store is the durable backend; nil selects the heuristic fallback.
	Store status.Store
	// Heuristic synthesizes progress when no store is configured.
	Heuristic *status.Heuristic
	// ReadTimeout bounds the durable-store read.
	ReadTimeout time.Duration
}

// Report returns the status document for trackingID.
//
// Failures: ErrInvalidRequest for a blank identifier; in durable mode the
// store's sentinel errors (status.ErrNotFound, status.ErrCorrupt,
// status.ErrUnavailable) pass through. The heuristic mode never fails after
// the identifier check.
func (s *StatusService) Report(ctx context.Context, trackingID string) (*domain.StatusDocument, error) {
	trackingID = strings.TrimSpace(trackingID)
	if trackingID == "" {
		return nil, ErrInvalidRequest
	}

	if s.Store == nil {
		return s.Heuristic.Report(trackingID), nil
	}

	timeout := s.ReadTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	rctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	return s.Store.Get(rctx, trackingID)
}
