package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-wizard/internal/metrics"
	"github.com/jonathan/resume-wizard/internal/submit"
)

// session is one open wizard. The orchestrator serializes access to its controller.
type session struct {
	id        string
	orch      *submit.Orchestrator
	createdAt time.Time
}

// sessionRegistry holds the open sessions of this process
type sessionRegistry struct {
	mu       sync.RWMutex
	sessions map[string]*session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*session)}
}

func (r *sessionRegistry) add(orch *submit.Orchestrator) *session {
	sess := &session{id: uuid.NewString(), orch: orch, createdAt: time.Now()}
	r.mu.Lock()
	r.sessions[sess.id] = sess
	r.mu.Unlock()
	metrics.ActiveSessions.Inc()
	return sess
}

func (r *sessionRegistry) get(id string) (*session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sess, ok := r.sessions[id]
	if !ok {
		return nil, &ErrSessionNotFound{SessionID: id}
	}
	return sess, nil
}

// remove detaches and forgets the session. An in-flight submit keeps running
// but its response no longer touches the wizard.
func (r *sessionRegistry) remove(id string) error {
	r.mu.Lock()
	sess, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()
	if !ok {
		return &ErrSessionNotFound{SessionID: id}
	}
	sess.orch.Detach()
	metrics.ActiveSessions.Dec()
	return nil
}

func (r *sessionRegistry) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, sess := range r.sessions {
		sess.orch.Detach()
		delete(r.sessions, id)
		metrics.ActiveSessions.Dec()
	}
}

func (r *sessionRegistry) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// promptKey carries the per-request naming decision into the session prompter
type promptKey struct{}

// promptState is filled in by the prompter so the handler can report the suggestion
type promptState struct {
	accept     bool
	suggestion string
}

// sessionPrompter answers the naming prompt from the submitting request: it
// accepts the suggestion unless the request opted out, in which case the
// submit is cancelled and the suggestion is returned to the caller.
func sessionPrompter(ctx context.Context, suggestion string) (string, bool, error) {
	st, ok := ctx.Value(promptKey{}).(*promptState)
	if !ok {
		return suggestion, true, nil
	}
	st.suggestion = suggestion
	if !st.accept {
		return "", false, nil
	}
	return suggestion, true, nil
}
