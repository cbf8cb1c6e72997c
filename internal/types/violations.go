// Package types provides type definitions for structured data used throughout the resume wizard.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
)

// UnknownStep marks a violation that could not be attributed to any wizard step.
const UnknownStep = -1

// Violation sources
const (
	SourceLocal  = "local"
	SourceSchema = "schema"
	SourceServer = "server"
)

// Violation represents a single unmet validation rule, tagged with the step it belongs to
type Violation struct {
	Step    int    `json:"step"`
	Domain  Domain `json:"domain,omitempty"`
	Field   string `json:"field,omitempty"` // e.g. "experience[0].company" or a server field path
	Message string `json:"message"`
	Source  string `json:"source"`
}

// Messages flattens violations to their human-readable messages, preserving order.
func Messages(vs []Violation) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		out = append(out, v.Message)
	}
	return out
}

// FieldError is one (field_path, message) pair of a structured validation failure.
type FieldError struct {
	FieldPath string `json:"field_path"`
	Message   string `json:"message"`
}

// ValidationFailure is returned by the persistence layer when the backend
// rejects a payload with per-field detail (HTTP 422).
type ValidationFailure struct {
	Details []FieldError
}

func (e *ValidationFailure) Error() string {
	if len(e.Details) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, fmt.Sprintf("%s: %s", d.FieldPath, d.Message))
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(parts, "; "))
}
