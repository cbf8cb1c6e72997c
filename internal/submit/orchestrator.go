package submit

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/resume-wizard/internal/classify"
	"github.com/jonathan/resume-wizard/internal/logging"
	"github.com/jonathan/resume-wizard/internal/mapper"
	"github.com/jonathan/resume-wizard/internal/metrics"
	"github.com/jonathan/resume-wizard/internal/schemas"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/validation"
	"github.com/jonathan/resume-wizard/internal/wizard"
)

// Mode selects between creating a new resume and updating a stored one
type Mode string

// Submit modes
const (
	ModeCreate Mode = "create"
	ModeUpdate Mode = "update"
)

// Status is the submission state of one wizard
type Status string

// Submission states
const (
	StatusIdle       Status = "idle"
	StatusValidating Status = "validating"
	StatusSubmitting Status = "submitting"
)

// Outcome classifies a finished Submit call
type Outcome string

// Submit outcomes
const (
	OutcomeSuccess   Outcome = "success"
	OutcomeInvalid   Outcome = "invalid"   // local or structured server validation failure
	OutcomeFailed    Outcome = "failed"    // generic failure, banner only
	OutcomeIgnored   Outcome = "ignored"   // another submission was in flight, or not on the last step
	OutcomeCancelled Outcome = "cancelled" // naming prompt dismissed or wizard detached
)

// Request is one submit trigger
type Request struct {
	Mode Mode   `json:"mode"`
	Name string `json:"name,omitempty"`
}

// StepShortcut points at another step that has errors
type StepShortcut struct {
	Ordinal int    `json:"ordinal"`
	Title   string `json:"title"`
	Count   int    `json:"count"`
}

// Summary groups violations for display after a failed submit
type Summary struct {
	CurrentStep int            `json:"current_step"`
	Current     []string       `json:"current"`
	Elsewhere   []StepShortcut `json:"elsewhere,omitempty"`
	General     []string       `json:"general,omitempty"`
}

// Result is the outcome of Submit
type Result struct {
	Outcome   Outcome  `json:"outcome"`
	ResumeID  string   `json:"resume_id,omitempty"`
	Name      string   `json:"name,omitempty"`
	Relocated bool     `json:"relocated"`
	Step      int      `json:"step"`
	Errors    []string `json:"errors,omitempty"`
	Summary   *Summary `json:"summary,omitempty"`
	Banner    string   `json:"banner,omitempty"`
	Err       error    `json:"-"`
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithPrompter sets the naming prompt used in create mode. Without one the suggestion is accepted.
func WithPrompter(p NamePrompter) Option {
	return func(o *Orchestrator) { o.prompter = p }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Orchestrator) { o.logger = logging.OrNop(l) }
}

// WithStoredResume makes the orchestrator update an existing resume.
func WithStoredResume(id, name string) Option {
	return func(o *Orchestrator) {
		o.resumeID = id
		o.storedName = name
	}
}

// WithDefaultName sets the base name suggested for unnamed new resumes.
func WithDefaultName(name string) Option {
	return func(o *Orchestrator) {
		if strings.TrimSpace(name) != "" {
			o.defaultName = strings.TrimSpace(name)
		}
	}
}

// Orchestrator runs the validate, map and dispatch cycle for one wizard. It
// also serializes access to the wizard controller: use Edit and View from
// other goroutines.
type Orchestrator struct {
	mu       sync.Mutex
	status   Status
	detached bool

	ctrl        *wizard.Controller
	store       ResumeStore
	prompter    NamePrompter
	logger      *zap.Logger
	resumeID    string
	storedName  string
	defaultName string
}

// New returns an idle orchestrator driving ctrl and persisting through store.
func New(ctrl *wizard.Controller, store ResumeStore, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		status:      StatusIdle,
		ctrl:        ctrl,
		store:       store,
		prompter:    AcceptSuggestion,
		logger:      zap.NewNop(),
		defaultName: DefaultResumeName,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.prompter == nil {
		o.prompter = AcceptSuggestion
	}
	return o
}

// Status returns the current submission state.
func (o *Orchestrator) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// ResumeID returns the backend id of the resume, once it has one.
func (o *Orchestrator) ResumeID() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.resumeID
}

// DefaultMode is update once the resume is stored, create before.
func (o *Orchestrator) DefaultMode() Mode {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.resumeID != "" {
		return ModeUpdate
	}
	return ModeCreate
}

// Edit runs fn with exclusive access to the controller.
func (o *Orchestrator) Edit(fn func(c *wizard.Controller)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fn(o.ctrl)
}

// View returns a snapshot of the controller.
func (o *Orchestrator) View() wizard.Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.ctrl.Snapshot()
}

// Detach marks the wizard as closed. A response that arrives afterwards is
// dropped without touching the controller.
func (o *Orchestrator) Detach() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.detached = true
}

// Submit validates the working document and, when valid, creates or updates
// the resume. Validation failures never come back as errors; they relocate
// the wizard and are reported in the Result.
func (o *Orchestrator) Submit(ctx context.Context, req Request) Result {
	start := time.Now()
	mode := req.Mode
	if mode == "" {
		mode = o.DefaultMode()
	}

	res := o.submit(ctx, mode, req)
	metrics.ObserveSubmit(string(mode), string(res.Outcome), time.Since(start))
	return res
}

func (o *Orchestrator) submit(ctx context.Context, mode Mode, req Request) Result {
	o.mu.Lock()
	if o.status != StatusIdle || o.detached {
		status := o.status
		o.mu.Unlock()
		o.logger.Debug("submit ignored", zap.String("status", string(status)))
		return Result{Outcome: OutcomeIgnored, Step: types.UnknownStep}
	}
	if !o.ctrl.IsLastStep() {
		step := o.ctrl.CurrentStep()
		o.mu.Unlock()
		o.logger.Debug("submit ignored away from the last step", zap.Int("step", step))
		return Result{Outcome: OutcomeIgnored, Step: step, Err: &StepError{Step: step}}
	}
	o.status = StatusValidating

	doc := o.ctrl.Document()
	if result := validation.ValidateAll(&doc); !result.IsValid {
		res := o.applyViolationsLocked(result.Violations)
		o.status = StatusIdle
		o.mu.Unlock()
		o.logger.Info("submit blocked by validation",
			zap.Int("violations", len(result.Violations)),
			zap.Int("relocated_to", res.Step))
		return res
	}

	payload := mapper.ToPersistencePayload(doc)
	if err := schemas.ValidatePayload(payload); err != nil {
		var schemaErr *schemas.ValidationError
		if errors.As(err, &schemaErr) {
			res := o.applyViolationsLocked(classify.FromFieldErrors(schemaErr.FieldErrors(), types.SourceSchema))
			o.status = StatusIdle
			o.mu.Unlock()
			o.logger.Warn("payload failed schema check", zap.Error(err))
			return res
		}
		res := o.failLocked(err)
		o.status = StatusIdle
		o.mu.Unlock()
		return res
	}

	resumeID, storedName := o.resumeID, o.storedName
	if storedName == "" {
		storedName = strings.TrimSpace(doc.ResumeName)
	}
	o.status = StatusSubmitting
	o.mu.Unlock()

	var (
		id   string
		name string
		err  error
	)
	switch mode {
	case ModeCreate:
		var ok bool
		name, ok, err = o.resolveName(ctx, firstNonBlank(req.Name, doc.ResumeName))
		if err == nil && !ok {
			return o.finish(func() Result {
				o.logger.Info("submit cancelled at naming prompt")
				return Result{Outcome: OutcomeCancelled, Step: o.ctrl.CurrentStep()}
			})
		}
		if err == nil {
			o.logger.Debug("creating resume", zap.String("name", name))
			id, err = o.store.CreateResume(ctx, payload, doc.SelectedTemplate, name)
		}
	case ModeUpdate:
		name = firstNonBlank(storedName, req.Name)
		if resumeID == "" {
			err = &ModeError{Mode: mode, Message: "resume has not been saved yet"}
			break
		}
		o.logger.Debug("updating resume", zap.String("resume_id", resumeID))
		id, err = o.store.UpdateResume(ctx, resumeID, payload, doc.SelectedTemplate, name)
	default:
		err = &ModeError{Mode: mode, Message: "unknown mode"}
	}

	var (
		saved    *types.PersistedResume
		fetchErr error
	)
	if err == nil {
		saved, fetchErr = o.store.FetchResume(ctx, id)
	}

	return o.finish(func() Result {
		if err != nil {
			var failure *types.ValidationFailure
			if errors.As(err, &failure) {
				o.logger.Warn("backend rejected resume", zap.Int("details", len(failure.Details)))
				return o.applyViolationsLocked(classify.FromFieldErrors(failure.Details, types.SourceServer))
			}
			return o.failLocked(&DispatchError{Mode: mode, Cause: err})
		}

		o.resumeID = id
		o.storedName = name
		o.adoptSavedLocked(doc, saved, fetchErr)
		o.ctrl.UpdateDomain(types.DocumentPatch{ResumeName: &name})
		o.logger.Info("resume saved", zap.String("resume_id", id), zap.String("mode", string(mode)))
		return Result{Outcome: OutcomeSuccess, ResumeID: id, Name: name, Step: o.ctrl.CurrentStep()}
	})
}

// finish reacquires the lock, applies fn unless the wizard was detached and returns to idle.
func (o *Orchestrator) finish(fn func() Result) Result {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.status = StatusIdle
	if o.detached {
		o.logger.Debug("dropping response for detached wizard")
		return Result{Outcome: OutcomeCancelled, Step: types.UnknownStep}
	}
	return fn()
}

// adoptSavedLocked replaces client item ids with the keys the backend assigned,
// unless the document was edited while the save was in flight. o.mu must be held.
func (o *Orchestrator) adoptSavedLocked(sent types.WorkingDocument, saved *types.PersistedResume, fetchErr error) {
	switch {
	case fetchErr != nil:
		o.logger.Warn("could not reload saved resume, keeping client item ids", zap.Error(fetchErr))
	case saved == nil:
		o.logger.Warn("saved resume not found on reload, keeping client item ids")
	case !reflect.DeepEqual(o.ctrl.Document(), sent):
		o.logger.Debug("document changed during save, keeping client item ids")
	default:
		o.ctrl.ReplaceDocument(mapper.AdoptServerIDs(sent, saved.Data))
	}
}

// resolveName picks the name for a new resume, prompting when the requested
// name is missing or already taken.
func (o *Orchestrator) resolveName(ctx context.Context, requested string) (string, bool, error) {
	existing, err := o.store.ListResumeNames(ctx)
	if err != nil {
		o.logger.Warn("could not list resume names, suggesting without collision check", zap.Error(err))
		existing = nil
	}

	base := firstNonBlank(requested, o.defaultName)
	suggestion := SuggestName(base, existing)
	if requested != "" && suggestion == requested {
		return requested, true, nil
	}

	name, ok, err := o.prompter.PromptName(ctx, suggestion)
	if err != nil || !ok {
		return "", ok, err
	}
	if strings.TrimSpace(name) == "" {
		return suggestion, true, nil
	}
	return strings.TrimSpace(name), true, nil
}

// applyViolationsLocked publishes violations, relocates to the first
// offending step and builds the grouped summary. o.mu must be held.
func (o *Orchestrator) applyViolationsLocked(vs []types.Violation) Result {
	o.ctrl.SetViolations(vs)
	for _, v := range vs {
		metrics.ObserveViolation(v.Source, v.Step)
	}

	res := Result{Outcome: OutcomeInvalid, Errors: types.Messages(vs), Step: types.UnknownStep}
	if step, ok := classify.FindFirstStepWithErrors(vs); ok {
		o.ctrl.JumpTo(step)
		res.Relocated = true
		res.Step = step
	}
	summary := summarize(o.ctrl)
	res.Summary = &summary
	return res
}

// failLocked surfaces a generic failure as a banner without moving. o.mu must be held.
func (o *Orchestrator) failLocked(err error) Result {
	msg := err.Error()
	o.ctrl.SetBanner(msg)
	o.logger.Warn("submit failed", zap.Error(err))
	return Result{
		Outcome: OutcomeFailed,
		Step:    o.ctrl.CurrentStep(),
		Banner:  msg,
		Err:     err,
	}
}

// summarize splits the controller's violations into the current step's
// messages, shortcuts to other steps and messages that belong to no step.
func summarize(c *wizard.Controller) Summary {
	s := Summary{
		CurrentStep: c.CurrentStep(),
		Current:     c.MessagesForStep(c.CurrentStep()),
		General:     types.Messages(c.UnclassifiedErrors()),
	}
	for _, st := range c.Steps() {
		if st.Ordinal == c.CurrentStep() || st.ErrorCount == 0 {
			continue
		}
		s.Elsewhere = append(s.Elsewhere, StepShortcut{Ordinal: st.Ordinal, Title: st.Title, Count: st.ErrorCount})
	}
	return s
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

