package schema

import (
	"errors"
	"fmt"
)

// ValidationError reports a submitted value outside its field's domain.
// Validation happens before any reconciliation, so a bad value never
// reaches the store.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value %q for %s: %s", e.Value, e.Field, e.Reason)
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
