// Package services implements the business logic behind the three intake
// endpoints: triggering a workflow execution, booking a partner appointment,
// and reporting workflow progress.
//
// This file centralizes the service-level error taxonomy. Services return
// these typed errors for every predictable failure; the HTTP layer performs a
// single uniform mapping from them to response envelopes and status codes.
package services

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidRequest indicates a missing or structurally unusable request
// payload (client fault).
var ErrInvalidRequest = errors.New("invalid request payload")

// ValidationError reports every required intake field that was absent or
// blank. The Missing list is always complete; validation never stops at the
// first gap.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// ConfigError indicates a missing or unusable deployment setting, typically
// an absent partner credential. It is a deployment fault, not a client fault.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "configuration error: " + e.Reason
}

// TransformError reports mandatory partner-payload fields that were empty
// after the transform. Validation runs first, so reaching this state means an
// internal fault.
type TransformError struct {
	Fields []string
}

func (e *TransformError) Error() string {
	return "payload transform produced empty fields: " + strings.Join(e.Fields, ", ")
}

// OrchestrationError wraps a failure to start the external workflow
// execution. The start call is fire-and-forget and never retried here.
type OrchestrationError struct {
	Err error
}

func (e *OrchestrationError) Error() string {
	return fmt.Sprintf("workflow start failed: %v", e.Err)
}

func (e *OrchestrationError) Unwrap() error { return e.Err }
