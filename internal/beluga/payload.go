// Package beluga integrates with the Beluga Health scheduling API. It builds
// the flattened visit payload from a customer intake record and calls the
// synchronous booking endpoint, normalizing the partner's responses into a
// small, explicit outcome taxonomy.
package beluga

import (
	"fmt"
	"strings"
	"time"

	"github.com/curalife/intake-backend/internal/domain"
)

// maxQuestionSlots caps the numbered Q/A sequence in the visit payload. The
// partner form renders ten question slots.
const maxQuestionSlots = 10

// Questions attached to the free-text sources when folding them into the Q/A
// sequence.
const (
	mainReasonsQuestion       = "What are your main reasons for seeking care?"
	medicalConditionsQuestion = "Do you have any existing medical conditions?"
)

// mandatoryFields are the payload keys that must be non-empty after the
// transform. An empty value here means the upstream validation or the
// transform itself went wrong, so callers treat it as an internal fault.
var mandatoryFields = []string{
	"firstName", "lastName", "email", "phone", "dob",
	"address", "city", "state", "zip", "sex",
}

// MasterID generates the partner-facing master identifier for a booking:
// the capture instant in milliseconds joined with the first five characters
// of the customer's email local part.
func MasterID(at time.Time, email string) string {
	local := email
	if i := strings.Index(email, "@"); i >= 0 {
		local = email[:i]
	}
	if len(local) > 5 {
		local = local[:5]
	}
	return fmt.Sprintf("%d-%s", at.UnixMilli(), strings.ToLower(local))
}

// FormatDOB canonicalizes a date of birth to MM/DD/YYYY. Accepted inputs are
// YYYYMMDD (the quiz wire format), YYYY-MM-DD, and MM/DD/YYYY (passed
// through). Anything else is returned trimmed; the post-transform check only
// rejects emptiness.
func FormatDOB(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case len(s) == 8 && isDigits(s):
		return s[4:6] + "/" + s[6:8] + "/" + s[0:4]
	case len(s) == 10 && s[4] == '-' && s[7] == '-':
		return s[5:7] + "/" + s[8:10] + "/" + s[0:4]
	default:
		return s
	}
}

// FormatPhone strips a phone number down to digits. An 11-digit number with a
// leading country code 1 is reduced to the 10 national digits the partner
// expects.
func FormatPhone(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) == 11 && digits[0] == '1' {
		return digits[1:]
	}
	return digits
}

// FormatState normalizes a state code to uppercase.
func FormatState(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

// BuildPayload flattens an intake record into the visit payload sent to the
// booking endpoint. The Q/A sequence is assembled from three sources in
// order: structured quiz responses, the main-reasons free text, and the
// medical-conditions list. Numbering starts at Q1 and stays contiguous;
// entries with an empty question or answer are skipped.
func BuildPayload(rec *domain.IntakeRecord, masterID string) map[string]string {
	p := map[string]string{
		"firstName": strings.TrimSpace(rec.FirstName),
		"lastName":  strings.TrimSpace(rec.LastName),
		"email":     strings.TrimSpace(rec.CustomerEmail),
		"phone":     FormatPhone(rec.PhoneNumber),
		"dob":       FormatDOB(rec.DateOfBirth),
		"address":   strings.TrimSpace(rec.Address),
		"city":      strings.TrimSpace(rec.City),
		"state":     FormatState(rec.State),
		"zip":       strings.TrimSpace(rec.Zip),
		"sex":       strings.TrimSpace(rec.Sex),
		"masterId":  masterID,
	}

	n := 0
	add := func(question, answer string) {
		question = strings.TrimSpace(question)
		answer = strings.TrimSpace(answer)
		if question == "" || answer == "" || n >= maxQuestionSlots {
			return
		}
		n++
		p[fmt.Sprintf("Q%d", n)] = question
		p[fmt.Sprintf("A%d", n)] = answer
	}

	for _, r := range rec.AllResponses {
		add(questionText(r), r.AnswerText())
	}
	if reasons := rec.MainReasons.Join(); reasons != "" {
		add(mainReasonsQuestion, reasons)
	}
	if conditions := rec.MedicalConditions.Join(); conditions != "" {
		add(medicalConditionsQuestion, conditions)
	}

	return p
}

// questionText renders the question for one quiz response. Choice-style
// questions get their option list appended so the partner sees what the
// customer picked from.
func questionText(r domain.QuizResponse) string {
	q := strings.TrimSpace(r.Question)
	if q == "" {
		q = strings.TrimSpace(r.QuestionID)
	}
	if q == "" {
		return ""
	}
	if len(r.Options) > 0 && isChoiceType(r.Type) {
		return q + " (" + strings.Join(r.Options, ", ") + ")"
	}
	return q
}

func isChoiceType(t string) bool {
	switch strings.ToLower(strings.TrimSpace(t)) {
	case "multiple-choice", "checkbox", "":
		// Untyped responses with options are treated as choice questions.
		return true
	default:
		return false
	}
}

// EmptyMandatory returns the mandatory payload fields that ended up empty
// after the transform, in a stable order.
func EmptyMandatory(p map[string]string) []string {
	var empty []string
	for _, f := range mandatoryFields {
		if strings.TrimSpace(p[f]) == "" {
			empty = append(empty, f)
		}
	}
	return empty
}
