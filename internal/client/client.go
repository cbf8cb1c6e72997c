// Package client implements the resume persistence collaborator over the backend's REST API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jonathan/resume-wizard/internal/types"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "ResumeWizard/1.0"

// maxErrorBody bounds how much of a failed response is kept for the error message
const maxErrorBody = 4 << 10

// Options configures the client.
type Options struct {
	Timeout    time.Duration
	UserAgent  string
	Headers    map[string]string // e.g. Authorization, set by the caller's session layer
	HTTPClient *http.Client
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Client talks to the resume backend. It satisfies submit.ResumeStore.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	opts    *Options
}

// resumeRequest is the create/update body
type resumeRequest struct {
	Name       string              `json:"name,omitempty"`
	TemplateID string              `json:"template_id,omitempty"`
	Data       types.ResumePayload `json:"data"`
}

type resumeRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// New returns a client for the backend at baseURL.
func New(baseURL string, opts *Options) (*Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, &APIError{Message: fmt.Sprintf("invalid base URL %q", baseURL), Cause: err}
	}

	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		hc = &http.Client{Timeout: timeout}
	}
	return &Client{baseURL: u, http: hc, opts: opts}, nil
}

// FetchResume returns the stored resume, or nil when the backend has none with that id.
func (c *Client) FetchResume(ctx context.Context, id string) (*types.PersistedResume, error) {
	var r types.PersistedResume
	status, err := c.do(ctx, http.MethodGet, "/resumes/"+url.PathEscape(id), nil, &r)
	if status == http.StatusNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// CreateResume stores a new resume and returns its id.
func (c *Client) CreateResume(ctx context.Context, payload types.ResumePayload, templateID, name string) (string, error) {
	var ref resumeRef
	body := resumeRequest{Name: name, TemplateID: templateID, Data: payload}
	if _, err := c.do(ctx, http.MethodPost, "/resumes", body, &ref); err != nil {
		return "", err
	}
	if ref.ID == "" {
		return "", &APIError{Message: "create response carried no id"}
	}
	return ref.ID, nil
}

// UpdateResume replaces a stored resume and returns its id.
func (c *Client) UpdateResume(ctx context.Context, id string, payload types.ResumePayload, templateID, name string) (string, error) {
	var ref resumeRef
	body := resumeRequest{Name: name, TemplateID: templateID, Data: payload}
	if _, err := c.do(ctx, http.MethodPut, "/resumes/"+url.PathEscape(id), body, &ref); err != nil {
		return "", err
	}
	if ref.ID == "" {
		ref.ID = id
	}
	return ref.ID, nil
}

// ListResumeNames returns the names of the user's resumes.
func (c *Client) ListResumeNames(ctx context.Context) ([]string, error) {
	var refs []resumeRef
	if _, err := c.do(ctx, http.MethodGet, "/resumes", nil, &refs); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.Name)
	}
	return names, nil
}

// do sends a JSON request and decodes a 2xx JSON response into out. It returns
// the status code even on error so callers can special-case it.
func (c *Client) do(ctx context.Context, method, path string, in, out any) (int, error) {
	endpoint := c.baseURL.String() + path

	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return 0, &APIError{Method: method, URL: endpoint, Message: "failed to encode request", Cause: err}
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return 0, &APIError{Method: method, URL: endpoint, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.opts.UserAgent)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range c.opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, &APIError{Method: method, URL: endpoint, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return resp.StatusCode, decodeFailure(method, endpoint, resp.StatusCode, raw)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, &APIError{Method: method, URL: endpoint, StatusCode: resp.StatusCode, Message: "failed to decode response", Cause: err}
	}
	return resp.StatusCode, nil
}
