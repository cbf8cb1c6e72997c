// Package validation checks a resume working document against the wizard's per-domain rules.
package validation

import (
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/wizard/steps"
)

// Result is the outcome of validating a whole working document
type Result struct {
	IsValid    bool              `json:"is_valid"`
	Errors     []string          `json:"errors"`
	Violations []types.Violation `json:"violations"`
}

// ValidateAll runs every domain validator in step-registry order and concatenates
// their violations. The order makes the first-error step lookup deterministic.
func ValidateAll(doc *types.WorkingDocument) Result {
	var all []types.Violation
	for _, step := range steps.All() {
		all = append(all, ValidateDomain(step.Domain, doc)...)
	}

	return Result{
		IsValid:    len(all) == 0,
		Errors:     types.Messages(all),
		Violations: all,
	}
}

// ValidateStep runs the validator of the step with the given ordinal.
func ValidateStep(ordinal int, doc *types.WorkingDocument) ([]types.Violation, error) {
	d, err := steps.ByOrdinal(ordinal)
	if err != nil {
		return nil, &Error{Message: "cannot validate step", Cause: err}
	}
	return ValidateDomain(d.Domain, doc), nil
}

// ValidateDomain runs the validator of a single domain. Domains without a validator
// (the review step) never have violations.
func ValidateDomain(domain types.Domain, doc *types.WorkingDocument) []types.Violation {
	v, ok := ValidatorFor(domain)
	if !ok {
		return nil
	}
	return v(doc)
}

// StepReport lists the local validation messages of one wizard step
type StepReport struct {
	steps.Descriptor
	Messages []string `json:"messages,omitempty"`
}

// ReportByStep groups the violations of r under the step that owns them. Every
// step is present, in registry order, even when it has no messages.
func (r Result) ReportByStep() []StepReport {
	out := make([]StepReport, 0, steps.Count())
	for _, d := range steps.All() {
		rep := StepReport{Descriptor: d}
		for _, v := range r.Violations {
			if v.Step == d.Ordinal {
				rep.Messages = append(rep.Messages, v.Message)
			}
		}
		out = append(out, rep)
	}
	return out
}
