package tracker

import (
	"fmt"
	"strings"
)

type OutcomeKind string

const (
	// OutcomeCreated means no record existed for the date and a new row was
	// written with every submitted field.
	OutcomeCreated OutcomeKind = "created"
	// OutcomeUpdated means an existing row had at least one field rewritten.
	OutcomeUpdated OutcomeKind = "updated"
	// OutcomeNoChange means the submission matched the baseline exactly, so
	// nothing was written and the cache was left alone.
	OutcomeNoChange OutcomeKind = "no-change"
)

// Outcome reports what a submission did. Changed lists field names in schema
// order; for a creation that is every submitted field.
type Outcome struct {
	Kind    OutcomeKind
	Date    string
	Changed []string
}

// Message renders the user-facing summary for the outcome.
func (o Outcome) Message() string {
	switch o.Kind {
	case OutcomeCreated:
		return fmt.Sprintf("New entry created for %s", o.Date)
	case OutcomeUpdated:
		return fmt.Sprintf("Updated fields for %s: %s", o.Date, strings.Join(o.Changed, ", "))
	default:
		return "No changes detected. No fields were updated."
	}
}
