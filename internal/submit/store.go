// Package submit validates, maps and dispatches a wizard's working document to the resume backend.
package submit

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-wizard/internal/types"
)

// ResumeStore is the persistence collaborator. Implementations return
// *types.ValidationFailure when the backend rejects a payload with per-field
// detail; any other error is treated as a generic failure.
type ResumeStore interface {
	FetchResume(ctx context.Context, id string) (*types.PersistedResume, error)
	CreateResume(ctx context.Context, payload types.ResumePayload, templateID, name string) (string, error)
	UpdateResume(ctx context.Context, id string, payload types.ResumePayload, templateID, name string) (string, error)
	ListResumeNames(ctx context.Context) ([]string, error)
}

// NamePrompter asks the user to confirm or change the name of a new resume.
// ok is false when the user dismisses the prompt.
type NamePrompter interface {
	PromptName(ctx context.Context, suggestion string) (name string, ok bool, err error)
}

// PrompterFunc adapts a function to NamePrompter.
type PrompterFunc func(ctx context.Context, suggestion string) (string, bool, error)

// PromptName calls f.
func (f PrompterFunc) PromptName(ctx context.Context, suggestion string) (string, bool, error) {
	return f(ctx, suggestion)
}

// AcceptSuggestion is a NamePrompter that always takes the suggested name.
var AcceptSuggestion NamePrompter = PrompterFunc(func(_ context.Context, suggestion string) (string, bool, error) {
	return suggestion, true, nil
})

// Hydrated is what edit mode loads before the wizard opens.
type Hydrated struct {
	Resume        *types.PersistedResume
	ExistingNames []string
}

// Hydrate fetches a stored resume and the existing resume names concurrently.
func Hydrate(ctx context.Context, store ResumeStore, id string) (*Hydrated, error) {
	var h Hydrated
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		r, err := store.FetchResume(gctx, id)
		if err != nil {
			return fmt.Errorf("failed to fetch resume %s: %w", id, err)
		}
		if r == nil {
			return &NotFoundError{ResumeID: id}
		}
		h.Resume = r
		return nil
	})
	g.Go(func() error {
		names, err := store.ListResumeNames(gctx)
		if err != nil {
			return fmt.Errorf("failed to list resume names: %w", err)
		}
		h.ExistingNames = names
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &h, nil
}
