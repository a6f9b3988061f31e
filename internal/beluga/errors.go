package beluga

import "fmt"

// FailureKind classifies a failed booking call. The partner embeds its own
// status code inside a JSON body, so an HTTP 200 alone never means success;
// the embedded code is authoritative.
type FailureKind string

const (
	// KindRejected: the partner answered but declined the booking (embedded
	// non-200 status, or a non-200 HTTP response with a parseable error body).
	KindRejected FailureKind = "partner_rejected"
	// KindUnparseable: the partner answered with a body that is not JSON.
	KindUnparseable FailureKind = "partner_unparseable"
	// KindTimeout: the call exceeded the configured deadline.
	KindTimeout FailureKind = "timeout"
	// KindNetwork: transport-level failure before a response was received.
	KindNetwork FailureKind = "network_error"
)

// PartnerError is a failed booking outcome. StatusCode carries the partner's
// embedded status when one was parsed, otherwise the HTTP status. RawBody is
// preserved for diagnostics and surfaced to the caller untouched.
type PartnerError struct {
	Kind       FailureKind
	Message    string
	StatusCode int
	RawBody    string
}

func (e *PartnerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("beluga: %s (status %d)", e.Kind, e.StatusCode)
	}
	return fmt.Sprintf("beluga: %s: %s", e.Kind, e.Message)
}
