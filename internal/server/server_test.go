package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/jonathan/resume-wizard/internal/fixtures"
	"github.com/jonathan/resume-wizard/internal/submit"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/wizard/steps"
)

func setupTestServer(t *testing.T) (*Server, *submit.MemoryStore) {
	t.Helper()
	store := submit.NewMemoryStore()
	s, err := New(Config{Port: 0, Store: store, Logger: zaptest.NewLogger(t)})
	require.NoError(t, err)
	return s, store
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func openSession(t *testing.T, s *Server, req CreateSessionRequest) SessionResponse {
	t.Helper()
	w := doJSON(t, s, http.MethodPost, "/sessions", req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody[SessionResponse](t, w)
}

// toReview moves a session to the last step, where submit is available
func toReview(t *testing.T, s *Server, id string) {
	t.Helper()
	w := doJSON(t, s, http.MethodPost, "/sessions/"+id+"/jump", map[string]int{"step": steps.Review})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestNew_RequiresStore(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestHandleHealth(t *testing.T) {
	s, _ := setupTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[map[string]any](t, w)
	assert.Equal(t, "ok", resp["status"])
}

func TestHandleListSteps(t *testing.T) {
	s, _ := setupTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/steps", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[map[string][]steps.Descriptor](t, w)
	require.Len(t, resp["steps"], steps.Count())
	assert.Equal(t, "personal_info", resp["steps"][0].ID)
	assert.Equal(t, "review", resp["steps"][steps.Review].ID)
}

func TestCreateSession_Blank(t *testing.T) {
	s, _ := setupTestServer(t)

	sess := openSession(t, s, CreateSessionRequest{})

	assert.NotEmpty(t, sess.ID)
	assert.Equal(t, submit.ModeCreate, sess.Mode)
	assert.Equal(t, submit.StatusIdle, sess.Status)
	assert.Equal(t, 0, sess.CurrentStep)
	assert.Len(t, sess.Steps, steps.Count())
	assert.True(t, sess.Steps[0].Current)
	assert.Empty(t, sess.Violations)
}

func TestCreateSession_EditStoredResume(t *testing.T) {
	s, store := setupTestServer(t)
	store.Put(*fixtures.PersistedResume())

	sess := openSession(t, s, CreateSessionRequest{ResumeID: "res-100"})

	assert.Equal(t, submit.ModeUpdate, sess.Mode)
	assert.Equal(t, "res-100", sess.ResumeID)
	require.NotNil(t, sess.Document.PersonalInfo)
	assert.Equal(t, "Ada", sess.Document.PersonalInfo.FirstName)
	assert.NotEmpty(t, sess.Document.Experience)
}

func TestCreateSession_UnknownResume(t *testing.T) {
	s, _ := setupTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/sessions", CreateSessionRequest{ResumeID: "missing"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateSession_Import(t *testing.T) {
	s, _ := setupTestServer(t)

	sess := openSession(t, s, CreateSessionRequest{Import: &types.ExtractedProfile{
		FirstName: "Grace",
		LastName:  "Hopper",
		Experience: []types.ExtractedExperience{
			{Title: "Rear Admiral", Company: "US Navy", StartDate: "Jan 1967", Current: true},
			{Title: "Researcher", Company: "Harvard", StartDate: "sometime"},
		},
		Skills: []string{"COBOL", "cobol"},
	}})

	assert.Equal(t, submit.ModeCreate, sess.Mode)
	require.NotNil(t, sess.Document.PersonalInfo)
	assert.Equal(t, "Grace", sess.Document.PersonalInfo.FirstName)
	assert.Len(t, sess.Document.Experience, 2)
	assert.Len(t, sess.Document.Skills, 1)
	assert.NotEmpty(t, sess.Warnings, "unparseable date is reported")
}

func TestCreateSession_ResumeAndImportConflict(t *testing.T) {
	s, _ := setupTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/sessions", CreateSessionRequest{
		ResumeID: "res-100",
		Import:   &types.ExtractedProfile{FirstName: "x"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody[map[string]string](t, w)
	assert.Contains(t, resp["error"], "resume_id")
}

func TestCreateSession_UnknownField(t *testing.T) {
	s, _ := setupTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/sessions", map[string]string{"resumeId": "x"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNavigation(t *testing.T) {
	s, _ := setupTestServer(t)
	sess := openSession(t, s, CreateSessionRequest{})
	base := "/sessions/" + sess.ID

	w := doJSON(t, s, http.MethodPost, base+"/next", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decodeBody[SessionResponse](t, w).CurrentStep)

	w = doJSON(t, s, http.MethodPost, base+"/previous", nil)
	assert.Equal(t, 0, decodeBody[SessionResponse](t, w).CurrentStep)

	w = doJSON(t, s, http.MethodPost, base+"/previous", nil)
	assert.Equal(t, 0, decodeBody[SessionResponse](t, w).CurrentStep, "previous on the first step stays")

	w = doJSON(t, s, http.MethodPost, base+"/jump", map[string]int{"step": 99})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, steps.Review, decodeBody[SessionResponse](t, w).CurrentStep)

	w = doJSON(t, s, http.MethodPost, base+"/jump", map[string]int{"step": steps.Skills})
	assert.Equal(t, steps.Skills, decodeBody[SessionResponse](t, w).CurrentStep)
}

func TestJump_MissingStep(t *testing.T) {
	s, _ := setupTestServer(t)
	sess := openSession(t, s, CreateSessionRequest{})

	w := doJSON(t, s, http.MethodPost, "/sessions/"+sess.ID+"/jump", map[string]any{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeBody[map[string]string](t, w)
	assert.Contains(t, resp["error"], "step")
}

func TestUnknownSession(t *testing.T) {
	s, _ := setupTestServer(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/sessions/nope"},
		{http.MethodPost, "/sessions/nope/next"},
		{http.MethodPatch, "/sessions/nope/document"},
		{http.MethodPost, "/sessions/nope/submit"},
		{http.MethodDelete, "/sessions/nope"},
	} {
		w := doJSON(t, s, tc.method, tc.path, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, tc.method+" "+tc.path)
	}
}

func TestDeleteSession(t *testing.T) {
	s, _ := setupTestServer(t)
	sess := openSession(t, s, CreateSessionRequest{})

	w := doJSON(t, s, http.MethodDelete, "/sessions/"+sess.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, s, http.MethodGet, "/sessions/"+sess.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmit_EmptyDocument(t *testing.T) {
	s, _ := setupTestServer(t)
	sess := openSession(t, s, CreateSessionRequest{})
	doJSON(t, s, http.MethodPost, "/sessions/"+sess.ID+"/jump", map[string]int{"step": steps.Review})

	w := doJSON(t, s, http.MethodPost, "/sessions/"+sess.ID+"/submit", SubmitRequest{})

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeBody[SubmitResponse](t, w)
	assert.Equal(t, submit.OutcomeInvalid, resp.Outcome)
	assert.True(t, resp.Relocated)
	assert.Equal(t, steps.PersonalInfo, resp.Step)
	assert.GreaterOrEqual(t, len(resp.Errors), 5)
	assert.Equal(t, steps.PersonalInfo, resp.Session.CurrentStep)
	assert.True(t, resp.Session.Steps[steps.PersonalInfo].HasErrors)
}

func TestPatchThenSubmit(t *testing.T) {
	s, store := setupTestServer(t)
	sess := openSession(t, s, CreateSessionRequest{})
	base := "/sessions/" + sess.ID

	w := doJSON(t, s, http.MethodPatch, base+"/document", fixtures.FullPatch(fixtures.ValidDocument()))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, s, http.MethodGet, base+"/validation", nil)
	require.Equal(t, http.StatusOK, w.Code)
	report := decodeBody[ValidationResponse](t, w)
	assert.True(t, report.IsValid)
	assert.Len(t, report.Steps, steps.Count())

	toReview(t, s, sess.ID)
	w = doJSON(t, s, http.MethodPost, base+"/submit", SubmitRequest{})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeBody[SubmitResponse](t, w)
	assert.Equal(t, submit.OutcomeSuccess, resp.Outcome)
	assert.Equal(t, "Resume", resp.Name)
	require.NotEmpty(t, resp.ResumeID)
	assert.Equal(t, submit.ModeUpdate, resp.Session.Mode)

	stored, err := store.FetchResume(context.Background(), resp.ResumeID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "classic", stored.TemplateID)

	// A second save goes to the same resume
	w = doJSON(t, s, http.MethodPost, base+"/submit", SubmitRequest{})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, resp.ResumeID, decodeBody[SubmitResponse](t, w).ResumeID)

	names, err := store.ListResumeNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Resume"}, names)
}

func TestSubmit_NameSuggestionDeclined(t *testing.T) {
	s, store := setupTestServer(t)
	_, err := store.CreateResume(context.Background(), types.ResumePayload{}, "", "Resume")
	require.NoError(t, err)

	sess := openSession(t, s, CreateSessionRequest{})
	base := "/sessions/" + sess.ID
	doJSON(t, s, http.MethodPatch, base+"/document", fixtures.FullPatch(fixtures.ValidDocument()))
	toReview(t, s, sess.ID)

	decline := false
	w := doJSON(t, s, http.MethodPost, base+"/submit", SubmitRequest{AcceptSuggestion: &decline})
	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	resp := decodeBody[SubmitResponse](t, w)
	assert.Equal(t, submit.OutcomeCancelled, resp.Outcome)
	assert.Equal(t, "Resume (1)", resp.SuggestedName)

	w = doJSON(t, s, http.MethodPost, base+"/submit", SubmitRequest{Name: resp.SuggestedName})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Resume (1)", decodeBody[SubmitResponse](t, w).Name)
}

func TestSubmit_UpdateBeforeSave(t *testing.T) {
	s, _ := setupTestServer(t)
	sess := openSession(t, s, CreateSessionRequest{})
	base := "/sessions/" + sess.ID
	doJSON(t, s, http.MethodPatch, base+"/document", fixtures.FullPatch(fixtures.ValidDocument()))
	toReview(t, s, sess.ID)

	w := doJSON(t, s, http.MethodPost, base+"/submit", SubmitRequest{Mode: "update"})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeBody[SubmitResponse](t, w)
	assert.Equal(t, submit.OutcomeFailed, resp.Outcome)
	assert.NotEmpty(t, resp.Banner)
}

func TestSubmit_AwayFromLastStep(t *testing.T) {
	s, store := setupTestServer(t)
	sess := openSession(t, s, CreateSessionRequest{})
	base := "/sessions/" + sess.ID
	doJSON(t, s, http.MethodPatch, base+"/document", fixtures.FullPatch(fixtures.ValidDocument()))

	w := doJSON(t, s, http.MethodPost, base+"/submit", SubmitRequest{})

	require.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	resp := decodeBody[SubmitResponse](t, w)
	assert.Equal(t, submit.OutcomeIgnored, resp.Outcome)
	assert.Contains(t, resp.Error, "only available from the last step")
	assert.Equal(t, steps.PersonalInfo, resp.Session.CurrentStep)

	names, err := store.ListResumeNames(context.Background())
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestSubmit_BadMode(t *testing.T) {
	s, _ := setupTestServer(t)
	sess := openSession(t, s, CreateSessionRequest{})

	w := doJSON(t, s, http.MethodPost, "/sessions/"+sess.ID+"/submit", SubmitRequest{Mode: "upsert"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPatch_ClearsViolations(t *testing.T) {
	s, _ := setupTestServer(t)
	sess := openSession(t, s, CreateSessionRequest{})
	base := "/sessions/" + sess.ID
	toReview(t, s, sess.ID)

	w := doJSON(t, s, http.MethodPost, base+"/submit", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	name := "Draft"
	w = doJSON(t, s, http.MethodPatch, base+"/document", types.DocumentPatch{ResumeName: &name})
	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[SessionResponse](t, w)
	assert.Empty(t, resp.Violations)
	assert.Equal(t, "Draft", resp.Document.ResumeName)
}

func TestValidation_SingleStep(t *testing.T) {
	s, _ := setupTestServer(t)
	sess := openSession(t, s, CreateSessionRequest{})
	base := "/sessions/" + sess.ID + "/validation"

	w := doJSON(t, s, http.MethodGet, base+"?step=3", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	report := decodeBody[ValidationResponse](t, w)
	assert.False(t, report.IsValid)
	require.Len(t, report.Steps, 1)
	assert.Equal(t, "skills", report.Steps[0].ID)
	assert.NotEmpty(t, report.Steps[0].Messages)

	w = doJSON(t, s, http.MethodGet, base+"?step=99", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, s, http.MethodGet, base+"?step=x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPatch_Empty(t *testing.T) {
	s, _ := setupTestServer(t)
	sess := openSession(t, s, CreateSessionRequest{})

	w := doJSON(t, s, http.MethodPatch, "/sessions/"+sess.ID+"/document", map[string]any{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORS(t *testing.T) {
	store := submit.NewMemoryStore()
	s, err := New(Config{Store: store, AllowedOrigins: []string{"http://localhost:3000"}})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodOptions, "/sessions", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/sessions", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	s, _ := setupTestServer(t)
	openSession(t, s, CreateSessionRequest{})

	w := doJSON(t, s, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "resume_wizard_active_sessions")
}
