// Package tracking derives and parses the status-tracking identifiers that
// correlate an intake submission with later status queries.
//
// An identifier is the capture instant rendered as a decimal seconds string
// with the separator characters ('.' and ':') stripped out, e.g.
// 1715003456.789123 -> "1715003456789123". The format is a legacy contract
// shared with the workflow engine and the storefront poller, so it is
// reproduced here as-is. Known gap: because the fractional part is not
// length-guaranteed by every producer, stripped identifiers are not lexically
// sortable by creation time and close-together instants can collide.
package tracking

import (
	"strconv"
	"strings"
	"time"
)

// microsPerSecond is the scale a stripped identifier is interpreted at when
// it carries the usual six fractional digits.
const microsPerSecond = 1e6

// NewID derives a tracking identifier from t.
func NewID(t time.Time) string {
	s := strconv.FormatFloat(float64(t.UnixMicro())/microsPerSecond, 'f', 6, 64)
	return strip(s)
}

// strip removes the separator characters from a formatted instant.
func strip(s string) string {
	s = strings.ReplaceAll(s, ".", "")
	return strings.ReplaceAll(s, ":", "")
}

// Elapsed reports the wall-clock time between the instant embedded in id and
// now. It returns an error when id does not parse as a numeric instant;
// callers decide how to degrade (the status reporter falls back to a terminal
// document rather than surfacing the error).
func Elapsed(id string, now time.Time) (time.Duration, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(id), 64)
	if err != nil {
		return 0, err
	}
	seconds := (float64(now.UnixMicro()) - v) / microsPerSecond
	return time.Duration(seconds * float64(time.Second)), nil
}
