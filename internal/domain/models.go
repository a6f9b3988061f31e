// Package domain defines the data shapes exchanged by the intake pipeline:
// the customer intake record submitted by the storefront quiz, and the status
// document that tracks an asynchronous workflow execution.
//
// All types here are plain JSON-mapped structs with no persistence concerns;
// the only durable state in the system lives in an external object store and
// is written by the workflow engine, not by this backend.
package domain

import (
	"encoding/json"
	"strings"
)

// StringList is a []string that also accepts a single JSON string or a JSON
// array of mixed scalars. Storefront clients have historically sent
// medicalConditions both as a list and as a bare string, so the decoder has
// to tolerate either.
type StringList []string

// UnmarshalJSON accepts `"x"`, `["x","y"]`, or null.
func (l *StringList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if strings.TrimSpace(s) == "" {
			*l = nil
			return nil
		}
		*l = StringList{s}
		return nil
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(StringList, 0, len(raw))
	for _, r := range raw {
		var item string
		if err := json.Unmarshal(r, &item); err != nil {
			// Non-string scalars (numbers, bools) are kept as their literal text.
			item = strings.Trim(string(r), `"`)
		}
		if strings.TrimSpace(item) != "" {
			out = append(out, item)
		}
	}
	*l = out
	return nil
}

// Join concatenates the entries with ", ", skipping blanks.
func (l StringList) Join() string {
	parts := make([]string, 0, len(l))
	for _, s := range l {
		if t := strings.TrimSpace(s); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, ", ")
}

// QuizResponse is one structured question/answer pair captured by the intake
// quiz. Multiple-choice and checkbox questions carry their option list so the
// partner payload can show what the customer chose from.
type QuizResponse struct {
	QuestionID string   `json:"questionId"`
	Question   string   `json:"question"`
	Type       string   `json:"type,omitempty"`
	Options    []string `json:"options,omitempty"`
	Answer     string   `json:"answer"`
	Value      string   `json:"value,omitempty"`
}

// AnswerText returns the effective answer for a response: the explicit answer
// when present, otherwise the raw value.
func (r QuizResponse) AnswerText() string {
	if a := strings.TrimSpace(r.Answer); a != "" {
		return a
	}
	return strings.TrimSpace(r.Value)
}

// IntakeRecord is a customer submission as received by the scheduling
// endpoint. Which fields are required depends on the consumer: the scheduling
// adapter needs the full demographic set below, the intake trigger only needs
// a non-empty submission.
type IntakeRecord struct {
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	CustomerEmail string `json:"customerEmail"`
	PhoneNumber   string `json:"phoneNumber"`
	DateOfBirth   string `json:"dateOfBirth"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	Sex           string `json:"sex"`

	TestMode bool `json:"testMode,omitempty"`

	AllResponses      []QuizResponse `json:"allResponses,omitempty"`
	MainReasons       StringList     `json:"mainReasons,omitempty"`
	MedicalConditions StringList     `json:"medicalConditions,omitempty"`
}

// schedulingRequired lists the fields the scheduling adapter insists on, in
// the order they are reported back to the client.
var schedulingRequired = []struct {
	name  string
	value func(*IntakeRecord) string
}{
	{"firstName", func(r *IntakeRecord) string { return r.FirstName }},
	{"lastName", func(r *IntakeRecord) string { return r.LastName }},
	{"customerEmail", func(r *IntakeRecord) string { return r.CustomerEmail }},
	{"phoneNumber", func(r *IntakeRecord) string { return r.PhoneNumber }},
	{"dateOfBirth", func(r *IntakeRecord) string { return r.DateOfBirth }},
	{"address", func(r *IntakeRecord) string { return r.Address }},
	{"city", func(r *IntakeRecord) string { return r.City }},
	{"state", func(r *IntakeRecord) string { return r.State }},
	{"zip", func(r *IntakeRecord) string { return r.Zip }},
	{"sex", func(r *IntakeRecord) string { return r.Sex }},
}

// MissingFields returns every required scheduling field that is absent or
// blank after trimming. The full list is computed so clients see all problems
// at once rather than one per round-trip.
func (r *IntakeRecord) MissingFields() []string {
	var missing []string
	for _, f := range schedulingRequired {
		if strings.TrimSpace(f.value(r)) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// CustomerName joins first and last name for display.
func (r *IntakeRecord) CustomerName() string {
	return strings.TrimSpace(strings.TrimSpace(r.FirstName) + " " + strings.TrimSpace(r.LastName))
}

// Workflow step names in the order the pipeline advances through them.
const (
	StepProcessing = "processing"
	StepValidating = "validating"
	StepFinalizing = "finalizing"
	StepCompleted  = "completed"
)

// StatusDocument is the normalized progress record for one tracking
// identifier. The workflow engine writes these into the durable store at each
// step transition; the heuristic reporter synthesizes them on the fly.
//
// FinalData and ErrorDetails are written by the workflow on terminal steps and
// passed through verbatim by the durable reporter.
type StatusDocument struct {
	StatusTrackingID string  `json:"statusTrackingId"`
	CurrentStep      string  `json:"currentStep"`
	Progress         int     `json:"progress"`
	Message          string  `json:"message"`
	Completed        bool    `json:"completed"`
	Error            bool    `json:"error"`
	Timestamp        float64 `json:"timestamp"`

	FinalData    map[string]any `json:"finalData,omitempty"`
	ErrorDetails string         `json:"errorDetails,omitempty"`
}
