// Package steps provides the fixed, ordered catalog of resume wizard steps.
package steps

import (
	"fmt"

	"github.com/jonathan/resume-wizard/internal/types"
)

// Descriptor defines metadata for a wizard step
type Descriptor struct {
	ID      string       `json:"id"`
	Title   string       `json:"title"`
	Domain  types.Domain `json:"domain"`
	Ordinal int          `json:"ordinal"`
}

// Step ordinals
const (
	PersonalInfo = iota
	Experience
	Education
	Skills
	Languages
	Certificates
	Links
	Projects
	Template
	Review
)

// registry is indexed by ordinal and never reordered.
var registry = [...]Descriptor{
	{ID: "personal_info", Title: "Personal information", Domain: types.DomainPersonalInfo, Ordinal: PersonalInfo},
	{ID: "experience", Title: "Experience", Domain: types.DomainExperience, Ordinal: Experience},
	{ID: "education", Title: "Education", Domain: types.DomainEducation, Ordinal: Education},
	{ID: "skills", Title: "Skills", Domain: types.DomainSkills, Ordinal: Skills},
	{ID: "languages", Title: "Languages", Domain: types.DomainLanguages, Ordinal: Languages},
	{ID: "certificates", Title: "Certificates", Domain: types.DomainCertificates, Ordinal: Certificates},
	{ID: "links", Title: "Links", Domain: types.DomainLinks, Ordinal: Links},
	{ID: "projects", Title: "Personal projects", Domain: types.DomainProjects, Ordinal: Projects},
	{ID: "template", Title: "Template", Domain: types.DomainTemplate, Ordinal: Template},
	{ID: "review", Title: "Review & submit", Domain: types.DomainReview, Ordinal: Review},
}

// UnknownStepError is returned when a step id or ordinal is not in the registry
type UnknownStepError struct {
	Key string
}

func (e *UnknownStepError) Error() string {
	return fmt.Sprintf("unknown step: %s", e.Key)
}

// All returns a copy of the registry in ordinal order.
func All() []Descriptor {
	out := make([]Descriptor, len(registry))
	copy(out, registry[:])
	return out
}

// Count returns the number of steps.
func Count() int {
	return len(registry)
}

// LastOrdinal returns the ordinal of the final step.
func LastOrdinal() int {
	return len(registry) - 1
}

// Clamp bounds an ordinal to [0, LastOrdinal()].
func Clamp(ordinal int) int {
	if ordinal < 0 {
		return 0
	}
	if ordinal > LastOrdinal() {
		return LastOrdinal()
	}
	return ordinal
}

// ByOrdinal returns the step at ordinal.
func ByOrdinal(ordinal int) (Descriptor, error) {
	if ordinal < 0 || ordinal > LastOrdinal() {
		return Descriptor{}, &UnknownStepError{Key: fmt.Sprintf("#%d", ordinal)}
	}
	return registry[ordinal], nil
}

// ByID returns the step with the given stable id.
func ByID(id string) (Descriptor, error) {
	for _, d := range registry {
		if d.ID == id {
			return d, nil
		}
	}
	return Descriptor{}, &UnknownStepError{Key: id}
}

// OrdinalForDomain returns the ordinal of the step editing domain, or
// types.UnknownStep if no step does.
func OrdinalForDomain(domain types.Domain) int {
	for _, d := range registry {
		if d.Domain == domain {
			return d.Ordinal
		}
	}
	return types.UnknownStep
}
