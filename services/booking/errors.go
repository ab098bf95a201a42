package booking

import (
	"fmt"
	"strings"
)

// ValidationError reports the exact input fields that were missing or
// invalid. Never retried, maps to a 400 response.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing or invalid fields: %s", strings.Join(e.Fields, ", "))
}

// TimeResolutionError signals that the local date/time could not be resolved
// into an absolute instant. Maps to a 400 response.
type TimeResolutionError struct {
	Err error
}

func (e *TimeResolutionError) Error() string {
	return fmt.Sprintf("could not resolve interview time: %v", e.Err)
}

func (e *TimeResolutionError) Unwrap() error {
	return e.Err
}
