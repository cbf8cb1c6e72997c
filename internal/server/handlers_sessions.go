package server

import (
	"context"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/jonathan/resume-wizard/internal/mapper"
	"github.com/jonathan/resume-wizard/internal/metrics"
	"github.com/jonathan/resume-wizard/internal/submit"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/validation"
	"github.com/jonathan/resume-wizard/internal/wizard"
	"github.com/jonathan/resume-wizard/internal/wizard/steps"
)

// CreateSessionRequest opens a wizard. With resume_id it edits a stored
// resume, with import it starts from a CV extraction, otherwise it is blank.
type CreateSessionRequest struct {
	ResumeID string                  `json:"resume_id,omitempty" validate:"excluded_with=Import"`
	Import   *types.ExtractedProfile `json:"import,omitempty"`
}

// JumpRequest moves the wizard to an arbitrary step
type JumpRequest struct {
	Step *int `json:"step" validate:"required"`
}

// SubmitRequest triggers a save. AcceptSuggestion defaults to true; when false
// and the name needs a suggestion, the submit is cancelled and the suggestion
// is returned instead.
type SubmitRequest struct {
	Mode             string `json:"mode,omitempty" validate:"omitempty,oneof=create update"`
	Name             string `json:"name,omitempty" validate:"max=200"`
	AcceptSuggestion *bool  `json:"accept_suggestion,omitempty"`
}

// SessionResponse is the state of a wizard session
type SessionResponse struct {
	ID       string        `json:"id"`
	Mode     submit.Mode   `json:"mode"`
	Status   submit.Status `json:"status"`
	ResumeID string        `json:"resume_id,omitempty"`
	wizard.Snapshot
	Warnings []string `json:"warnings,omitempty"`
}

// SubmitResponse is the outcome of a submit plus the resulting session state
type SubmitResponse struct {
	submit.Result
	SuggestedName string          `json:"suggested_name,omitempty"`
	Error         string          `json:"error,omitempty"`
	Session       SessionResponse `json:"session"`
}

// ValidationResponse is a read-only validation report of the current document
type ValidationResponse struct {
	IsValid bool                    `json:"is_valid"`
	Errors  []string                `json:"errors,omitempty"`
	Steps   []validation.StepReport `json:"steps"`
}

func (s *Server) sessionResponse(sess *session) SessionResponse {
	return SessionResponse{
		ID:       sess.id,
		Mode:     sess.orch.DefaultMode(),
		Status:   sess.orch.Status(),
		ResumeID: sess.orch.ResumeID(),
		Snapshot: sess.orch.View(),
	}
}

// handleListSteps returns the wizard step catalog
func (s *Server) handleListSteps(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{"steps": steps.All()})
}

// handleCreateSession opens a new, edit or import session
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req CreateSessionRequest
	if err := s.decodeRequest(r, &req); err != nil {
		s.errorFrom(w, err)
		return
	}

	opts := []submit.Option{
		submit.WithLogger(s.logger),
		submit.WithDefaultName(s.defaultName),
		submit.WithPrompter(submit.PrompterFunc(sessionPrompter)),
	}

	var (
		ctrl     *wizard.Controller
		warnings []string
	)
	switch {
	case req.ResumeID != "":
		h, err := submit.Hydrate(r.Context(), s.store, req.ResumeID)
		if err != nil {
			s.errorFrom(w, err)
			return
		}
		ctrl = wizard.NewControllerWithDocument(mapper.ToWorkingDocument(h.Resume))
		opts = append(opts, submit.WithStoredResume(h.Resume.ID, h.Resume.Name))
	case req.Import != nil:
		doc, errs := mapper.FromExtraction(*req.Import)
		for _, err := range errs {
			warnings = append(warnings, err.Error())
		}
		ctrl = wizard.NewControllerWithDocument(doc)
	default:
		ctrl = wizard.NewController()
	}

	sess := s.sessions.add(submit.New(ctrl, s.store, opts...))
	s.logger.Info("session opened",
		zap.String("session_id", sess.id),
		zap.String("resume_id", req.ResumeID),
		zap.Bool("import", req.Import != nil))

	resp := s.sessionResponse(sess)
	resp.Warnings = warnings
	s.jsonResponse(w, http.StatusCreated, resp)
}

// handleGetSession returns the current wizard state
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.get(r.PathValue("id"))
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(sess))
}

// handleDeleteSession discards a session without cancelling an in-flight submit
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.remove(r.PathValue("id")); err != nil {
		s.errorFrom(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNext(w http.ResponseWriter, r *http.Request) {
	s.navigate(w, r, "next", func(c *wizard.Controller) { c.Next() })
}

func (s *Server) handlePrevious(w http.ResponseWriter, r *http.Request) {
	s.navigate(w, r, "previous", func(c *wizard.Controller) { c.Previous() })
}

// handleJump moves to any step; out of range ordinals are clamped
func (s *Server) handleJump(w http.ResponseWriter, r *http.Request) {
	var req JumpRequest
	if err := s.decodeRequest(r, &req); err != nil {
		s.errorFrom(w, err)
		return
	}
	s.navigate(w, r, "jump", func(c *wizard.Controller) { c.JumpTo(*req.Step) })
}

func (s *Server) navigate(w http.ResponseWriter, r *http.Request, action string, move func(*wizard.Controller)) {
	sess, err := s.sessions.get(r.PathValue("id"))
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	sess.orch.Edit(move)
	metrics.ObserveNavigation(action)
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(sess))
}

// handlePatchDocument merges a partial document. Any edit hides the current
// violations until the next submit revalidates.
func (s *Server) handlePatchDocument(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.get(r.PathValue("id"))
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	var patch types.DocumentPatch
	if err := decodeJSON(r, &patch); err != nil {
		s.errorFrom(w, err)
		return
	}
	if len(patch.Domains()) == 0 && patch.ResumeName == nil {
		s.errorFrom(w, &ErrValidation{Field: "body", Message: "patch touches no section"})
		return
	}

	sess.orch.Edit(func(c *wizard.Controller) { c.UpdateDomain(patch) })
	s.jsonResponse(w, http.StatusOK, s.sessionResponse(sess))
}

// handleValidation reports local validation of the current document without
// changing the wizard state. ?step=n narrows the report to one step.
func (s *Server) handleValidation(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.get(r.PathValue("id"))
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	doc := sess.orch.View().Document
	if raw := r.URL.Query().Get("step"); raw != "" {
		ordinal, err := strconv.Atoi(raw)
		if err != nil {
			s.errorFrom(w, &ErrValidation{Field: "step", Message: "must be an integer"})
			return
		}
		violations, err := validation.ValidateStep(ordinal, &doc)
		if err != nil {
			s.errorFrom(w, err)
			return
		}
		d, _ := steps.ByOrdinal(ordinal)
		messages := types.Messages(violations)
		s.jsonResponse(w, http.StatusOK, ValidationResponse{
			IsValid: len(violations) == 0,
			Errors:  messages,
			Steps:   []validation.StepReport{{Descriptor: d, Messages: messages}},
		})
		return
	}

	result := validation.ValidateAll(&doc)
	s.jsonResponse(w, http.StatusOK, ValidationResponse{
		IsValid: result.IsValid,
		Errors:  result.Errors,
		Steps:   result.ReportByStep(),
	})
}

// handleSubmit validates and saves the resume
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.get(r.PathValue("id"))
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	var req SubmitRequest
	if err := s.decodeRequest(r, &req); err != nil {
		s.errorFrom(w, err)
		return
	}

	prompt := &promptState{accept: req.AcceptSuggestion == nil || *req.AcceptSuggestion}
	ctx := context.WithValue(r.Context(), promptKey{}, prompt)

	res := sess.orch.Submit(ctx, submit.Request{Mode: submit.Mode(req.Mode), Name: req.Name})

	resp := SubmitResponse{Result: res, Session: s.sessionResponse(sess)}
	if res.Outcome == submit.OutcomeCancelled {
		resp.SuggestedName = prompt.suggestion
	}
	if res.Err != nil {
		resp.Error = res.Err.Error()
	}
	s.jsonResponse(w, submitStatus(res), resp)
}

// submitStatus maps a submit outcome to the response status code
func submitStatus(res submit.Result) int {
	switch res.Outcome {
	case submit.OutcomeSuccess:
		return http.StatusOK
	case submit.OutcomeInvalid:
		return http.StatusUnprocessableEntity
	case submit.OutcomeIgnored, submit.OutcomeCancelled:
		return http.StatusConflict
	default:
		if res.Err != nil {
			switch st := HTTPStatus(res.Err); st {
			case http.StatusUnprocessableEntity, http.StatusNotFound:
				return st
			}
		}
		return http.StatusBadGateway
	}
}
