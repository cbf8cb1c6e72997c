// Package wizard holds the step-sequencing state of one resume editing session.
package wizard

import (
	"sort"

	"github.com/google/uuid"

	"github.com/jonathan/resume-wizard/internal/classify"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/wizard/steps"
)

// StepStatus is a step descriptor with the flags the UI renders next to it
type StepStatus struct {
	steps.Descriptor
	Current    bool `json:"current"`
	Completed  bool `json:"completed"`
	HasErrors  bool `json:"has_errors"`
	ErrorCount int  `json:"error_count"`
}

// Snapshot is a read-only copy of the controller state.
type Snapshot struct {
	CurrentStep int                   `json:"current_step"`
	Steps       []StepStatus          `json:"steps"`
	Document    types.WorkingDocument `json:"document"`
	Violations  []types.Violation     `json:"violations"`
	Banner      string                `json:"banner,omitempty"`
}

// Controller owns the working document and navigation state of a wizard.
// It is not safe for concurrent use; callers serialize access per session.
type Controller struct {
	current    int
	doc        types.WorkingDocument
	completed  map[int]bool
	violations []types.Violation
	banner     string
}

// NewController returns a controller on the first step with an empty document.
func NewController() *Controller {
	return NewControllerWithDocument(types.WorkingDocument{})
}

// NewControllerWithDocument starts a wizard on a hydrated document (edit or import mode).
func NewControllerWithDocument(doc types.WorkingDocument) *Controller {
	return &Controller{
		doc:       doc,
		completed: make(map[int]bool),
	}
}

// CurrentStep returns the ordinal of the active step.
func (c *Controller) CurrentStep() int {
	return c.current
}

// IsLastStep reports whether the active step is the final one.
func (c *Controller) IsLastStep() bool {
	return c.current == steps.LastOrdinal()
}

// Document returns the working document. Slices are shared with the
// controller; use UpdateDomain to change them.
func (c *Controller) Document() types.WorkingDocument {
	return c.doc
}

// Next marks the active step completed and advances. At the last step it only marks.
func (c *Controller) Next() {
	c.completed[c.current] = true
	if c.current < steps.LastOrdinal() {
		c.current++
	}
}

// Previous moves back one step. No-op on the first step.
func (c *Controller) Previous() {
	if c.current > 0 {
		c.current--
	}
}

// JumpTo moves to any step. Out-of-range targets are clamped.
func (c *Controller) JumpTo(ordinal int) {
	c.current = steps.Clamp(ordinal)
}

// IsCompleted reports whether the step has been left via Next.
func (c *Controller) IsCompleted(ordinal int) bool {
	return c.completed[ordinal]
}

// CompletedSteps returns the completed ordinals in ascending order.
func (c *Controller) CompletedSteps() []int {
	out := make([]int, 0, len(c.completed))
	for ord := range c.completed {
		out = append(out, ord)
	}
	sort.Ints(out)
	return out
}

// UpdateDomain merges a partial document and then suppresses all violations
// until the next explicit validation.
func (c *Controller) UpdateDomain(patch types.DocumentPatch) {
	if patch.PersonalInfo != nil {
		info := *patch.PersonalInfo
		c.doc.PersonalInfo = &info
	}
	if patch.Experience != nil {
		items := append([]types.ExperienceItem(nil), (*patch.Experience)...)
		for i := range items {
			items[i].ID = ensureID(items[i].ID)
		}
		c.doc.Experience = items
	}
	if patch.Education != nil {
		items := append([]types.EducationItem(nil), (*patch.Education)...)
		for i := range items {
			items[i].ID = ensureID(items[i].ID)
		}
		c.doc.Education = items
	}
	if patch.Skills != nil {
		items := append([]types.SkillItem(nil), (*patch.Skills)...)
		for i := range items {
			items[i].ID = ensureID(items[i].ID)
		}
		c.doc.Skills = items
	}
	if patch.Languages != nil {
		items := append([]types.LanguageItem(nil), (*patch.Languages)...)
		for i := range items {
			items[i].ID = ensureID(items[i].ID)
		}
		c.doc.Languages = items
	}
	if patch.Certificates != nil {
		items := append([]types.CertificateItem(nil), (*patch.Certificates)...)
		for i := range items {
			items[i].ID = ensureID(items[i].ID)
		}
		c.doc.Certificates = items
	}
	if patch.Links != nil {
		items := append([]types.LinkItem(nil), (*patch.Links)...)
		for i := range items {
			items[i].ID = ensureID(items[i].ID)
		}
		c.doc.Links = items
	}
	if patch.PersonalProjects != nil {
		items := append([]types.ProjectItem(nil), (*patch.PersonalProjects)...)
		for i := range items {
			items[i].ID = ensureID(items[i].ID)
		}
		c.doc.PersonalProjects = items
	}
	if patch.SelectedTemplate != nil {
		c.doc.SelectedTemplate = *patch.SelectedTemplate
	}
	if patch.ResumeName != nil {
		c.doc.ResumeName = *patch.ResumeName
	}

	c.SuppressUntilRevalidated()
}

// ReplaceDocument swaps in a document after a save. Step, completed set and
// violations are kept.
func (c *Controller) ReplaceDocument(doc types.WorkingDocument) {
	c.doc = doc
}

// SuppressUntilRevalidated clears the active violations and banner. The
// user is assumed to be fixing them; they return on the next validation run.
func (c *Controller) SuppressUntilRevalidated() {
	c.violations = nil
	c.banner = ""
}

// SetViolations replaces the active violation list.
func (c *Controller) SetViolations(vs []types.Violation) {
	c.violations = append([]types.Violation(nil), vs...)
}

// Violations returns the active violations in the order they were set.
func (c *Controller) Violations() []types.Violation {
	return append([]types.Violation(nil), c.violations...)
}

// Errors returns the flat message list of the active violations.
func (c *Controller) Errors() []string {
	return types.Messages(c.violations)
}

// SetBanner sets a non-blocking message that belongs to no step.
func (c *Controller) SetBanner(msg string) {
	c.banner = msg
}

// Banner returns the current banner message, if any.
func (c *Controller) Banner() string {
	return c.banner
}

// ErrorsForStep filters the active violations down to one step.
func (c *Controller) ErrorsForStep(ordinal int) []types.Violation {
	var out []types.Violation
	for _, v := range c.violations {
		if step, ok := classify.StepOf(v); ok && step == ordinal {
			out = append(out, v)
		}
	}
	return out
}

// MessagesForStep is ErrorsForStep reduced to messages.
func (c *Controller) MessagesForStep(ordinal int) []string {
	return types.Messages(c.ErrorsForStep(ordinal))
}

// UnclassifiedErrors returns violations that belong to no step.
func (c *Controller) UnclassifiedErrors() []types.Violation {
	var out []types.Violation
	for _, v := range c.violations {
		if _, ok := classify.StepOf(v); !ok {
			out = append(out, v)
		}
	}
	return out
}

// Steps returns every step with its completed and error flags.
func (c *Controller) Steps() []StepStatus {
	counts := make(map[int]int)
	for _, v := range c.violations {
		if step, ok := classify.StepOf(v); ok {
			counts[step]++
		}
	}

	all := steps.All()
	out := make([]StepStatus, 0, len(all))
	for _, d := range all {
		out = append(out, StepStatus{
			Descriptor: d,
			Current:    d.Ordinal == c.current,
			Completed:  c.completed[d.Ordinal],
			HasErrors:  counts[d.Ordinal] > 0,
			ErrorCount: counts[d.Ordinal],
		})
	}
	return out
}

// Snapshot copies the state for rendering or serialization.
func (c *Controller) Snapshot() Snapshot {
	return Snapshot{
		CurrentStep: c.current,
		Steps:       c.Steps(),
		Document:    c.doc,
		Violations:  c.Violations(),
		Banner:      c.banner,
	}
}

func ensureID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
