package db

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-wizard/internal/types"
)

// ResumeRow is a row of the resumes table
type ResumeRow struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	TemplateID string    `json:"template_id"`
	Data       []byte    `json:"data"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// uniqueViolation is the PostgreSQL SQLSTATE for a unique constraint failure
const uniqueViolation = "23505"

// nameTakenMessage is reported under the "name" field when the unique name index rejects a write
const nameTakenMessage = "a resume with this name already exists"

// ToPersisted decodes the JSONB data column into the persisted resume shape.
func (r ResumeRow) ToPersisted() (*types.PersistedResume, error) {
	out := &types.PersistedResume{
		ID:         r.ID.String(),
		Name:       r.Name,
		TemplateID: r.TemplateID,
	}
	if !r.CreatedAt.IsZero() {
		created := r.CreatedAt
		out.CreatedAt = &created
	}
	if !r.UpdatedAt.IsZero() {
		updated := r.UpdatedAt
		out.UpdatedAt = &updated
	}
	if len(r.Data) > 0 {
		if err := json.Unmarshal(r.Data, &out.Data); err != nil {
			return nil, fmt.Errorf("failed to unmarshal resume %s: %w", r.ID, err)
		}
	}
	return out, nil
}
