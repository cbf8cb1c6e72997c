package submit

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-wizard/internal/types"
)

// MemoryStore is an in-process ResumeStore for local runs and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	resumes map[string]*types.PersistedResume
	now     func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		resumes: make(map[string]*types.PersistedResume),
		now:     time.Now,
	}
}

// Put stores r as-is, replacing any resume with the same id.
func (s *MemoryStore) Put(r types.PersistedResume) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resumes[r.ID] = &r
}

// FetchResume returns a copy of the stored resume, or nil if there is none.
func (s *MemoryStore) FetchResume(_ context.Context, id string) (*types.PersistedResume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.resumes[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	return &cp, nil
}

// CreateResume stores a new resume under a fresh id.
func (s *MemoryStore) CreateResume(_ context.Context, payload types.ResumePayload, templateID, name string) (string, error) {
	if detail := requireName(name); detail != nil {
		return "", detail
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	id := uuid.NewString()
	s.resumes[id] = &types.PersistedResume{
		ID:         id,
		Name:       strings.TrimSpace(name),
		TemplateID: templateID,
		CreatedAt:  &now,
		UpdatedAt:  &now,
		Data:       payload.WithItemIDs(uuid.NewString),
	}
	return id, nil
}

// UpdateResume replaces the data of an existing resume.
func (s *MemoryStore) UpdateResume(_ context.Context, id string, payload types.ResumePayload, templateID, name string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.resumes[id]
	if !ok {
		return "", &NotFoundError{ResumeID: id}
	}
	now := s.now()
	r.TemplateID = templateID
	if strings.TrimSpace(name) != "" {
		r.Name = strings.TrimSpace(name)
	}
	r.UpdatedAt = &now
	r.Data = payload.WithItemIDs(uuid.NewString)
	return id, nil
}

// ListResumeNames returns every stored name, sorted.
func (s *MemoryStore) ListResumeNames(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.resumes))
	for _, r := range s.resumes {
		names = append(names, r.Name)
	}
	sort.Strings(names)
	return names, nil
}

func requireName(name string) error {
	if strings.TrimSpace(name) != "" {
		return nil
	}
	return &types.ValidationFailure{Details: []types.FieldError{{FieldPath: "name", Message: "resume name is required"}}}
}
