package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/jonathan/resume-wizard/internal/types"
)

// APIError represents a failed backend call that carries no per-field detail
type APIError struct {
	Method     string
	URL        string
	StatusCode int
	Message    string
	Cause      error
}

func (e *APIError) Error() string {
	var sb strings.Builder
	sb.WriteString("resume API error")
	if e.Method != "" {
		fmt.Fprintf(&sb, " (%s %s", e.Method, e.URL)
		if e.StatusCode != 0 {
			fmt.Fprintf(&sb, " -> %d", e.StatusCode)
		}
		sb.WriteString(")")
	}
	fmt.Fprintf(&sb, ": %s", e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&sb, ": %v", e.Cause)
	}
	return sb.String()
}

func (e *APIError) Unwrap() error {
	return e.Cause
}

// errorBody covers the error envelopes the backend produces: a detail list,
// a detail string, or a plain message.
type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// detailEntry accepts both {field_path, message} and {loc, msg} shaped items.
type detailEntry struct {
	FieldPath string            `json:"field_path"`
	Message   string            `json:"message"`
	Loc       []json.RawMessage `json:"loc"`
	Msg       string            `json:"msg"`
}

// decodeFailure turns a non-2xx response into *types.ValidationFailure when it
// carries per-field detail, otherwise into *APIError.
func decodeFailure(method, endpoint string, status int, raw []byte) error {
	var body errorBody
	_ = json.Unmarshal(raw, &body)

	if details := parseDetails(body.Detail); len(details) > 0 {
		return &types.ValidationFailure{Details: details}
	}

	msg := strings.TrimSpace(body.Message)
	if msg == "" {
		msg = strings.TrimSpace(body.Error)
	}
	if msg == "" && len(body.Detail) > 0 {
		var s string
		if json.Unmarshal(body.Detail, &s) == nil {
			msg = s
		}
	}
	if msg == "" {
		msg = strings.TrimSpace(string(raw))
	}
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{Method: method, URL: endpoint, StatusCode: status, Message: msg}
}

func parseDetails(raw json.RawMessage) []types.FieldError {
	if len(raw) == 0 {
		return nil
	}
	var entries []detailEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil
	}

	out := make([]types.FieldError, 0, len(entries))
	for _, e := range entries {
		fe := types.FieldError{FieldPath: e.FieldPath, Message: e.Message}
		if fe.FieldPath == "" && len(e.Loc) > 0 {
			fe.FieldPath = locPath(e.Loc)
		}
		if fe.Message == "" {
			fe.Message = e.Msg
		}
		if fe.FieldPath == "" && fe.Message == "" {
			continue
		}
		out = append(out, fe)
	}
	return out
}

// locPath renders ["body", "career_experiences", 0, "company_name"] as
// "body.career_experiences[0].company_name".
func locPath(loc []json.RawMessage) string {
	var sb strings.Builder
	for _, part := range loc {
		var n int
		if err := json.Unmarshal(part, &n); err == nil {
			sb.WriteString("[" + strconv.Itoa(n) + "]")
			continue
		}
		var s string
		if err := json.Unmarshal(part, &s); err != nil {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(".")
		}
		sb.WriteString(s)
	}
	return sb.String()
}
