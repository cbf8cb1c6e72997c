// Package mapper translates between the backend resume shape and the wizard's working document.
package mapper

import "fmt"

// DateError represents a date value that matches none of the accepted layouts
type DateError struct {
	Value string
	Cause error
}

func (e *DateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("date error: unrecognized date %q: %v", e.Value, e.Cause)
	}
	return fmt.Sprintf("date error: unrecognized date %q", e.Value)
}

func (e *DateError) Unwrap() error {
	return e.Cause
}

// DecodeError represents a persisted resume or working document that could not be decoded
type DecodeError struct {
	Message string
	Cause   error
}

func (e *DecodeError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("decode error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("decode error: %s", e.Message)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}
