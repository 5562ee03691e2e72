package store

import (
	"strings"
	"time"
)

// DateLayout is the canonical key format for day records.
const DateLayout = "2006-01-02"

// acceptedLayouts are the formats tolerated on input. Everything is
// re-emitted as DateLayout before comparison or storage.
var acceptedLayouts = []string{
	DateLayout,
	"2006/01/02",
	"01/02/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

// NormalizeDate canonicalizes a date to YYYY-MM-DD. Values that fail to
// parse return a DateFormatError rather than being stored as-is.
func NormalizeDate(input string) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", &DateFormatError{Input: input}
	}
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout), nil
		}
	}
	return "", &DateFormatError{Input: input}
}

// Today returns the current day in canonical form.
func Today() string {
	return time.Now().Format(DateLayout)
}
