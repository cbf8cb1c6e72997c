package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jonathan/resume-wizard/internal/submit"
	"github.com/jonathan/resume-wizard/internal/types"
)

// FetchResume returns the resume with the given id, or nil if it doesn't exist.
// Ids that are not UUIDs can never match and are reported as missing.
func (db *DB) FetchResume(ctx context.Context, id string) (*types.PersistedResume, error) {
	rid, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	var row ResumeRow
	err = db.pool.QueryRow(ctx,
		`SELECT id, name, template_id, data, created_at, updated_at
		 FROM resumes WHERE id = $1`,
		rid,
	).Scan(&row.ID, &row.Name, &row.TemplateID, &row.Data, &row.CreatedAt, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return row.ToPersisted()
}

// CreateResume inserts a new resume and returns its id.
func (db *DB) CreateResume(ctx context.Context, payload types.ResumePayload, templateID, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nameFailure("resume name is required")
	}

	data, err := json.Marshal(payload.WithItemIDs(uuid.NewString))
	if err != nil {
		return "", fmt.Errorf("failed to marshal resume: %w", err)
	}

	var id uuid.UUID
	err = db.pool.QueryRow(ctx,
		`INSERT INTO resumes (id, name, template_id, data)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		uuid.New(), name, templateID, data,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err) {
			return "", nameFailure(nameTakenMessage)
		}
		return "", fmt.Errorf("failed to create resume: %w", err)
	}
	return id.String(), nil
}

// UpdateResume replaces the data and template of an existing resume. A blank
// name keeps the stored one. An unknown id is *submit.NotFoundError.
func (db *DB) UpdateResume(ctx context.Context, id string, payload types.ResumePayload, templateID, name string) (string, error) {
	rid, err := uuid.Parse(id)
	if err != nil {
		return "", &submit.NotFoundError{ResumeID: id}
	}

	data, err := json.Marshal(payload.WithItemIDs(uuid.NewString))
	if err != nil {
		return "", fmt.Errorf("failed to marshal resume: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE resumes
		 SET name = COALESCE(NULLIF($2, ''), name), template_id = $3, data = $4, updated_at = NOW()
		 WHERE id = $1`,
		rid, strings.TrimSpace(name), templateID, data,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return "", nameFailure(nameTakenMessage)
		}
		return "", fmt.Errorf("failed to update resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return "", &submit.NotFoundError{ResumeID: id}
	}
	return rid.String(), nil
}

// ListResumeNames returns every stored resume name, sorted.
func (db *DB) ListResumeNames(ctx context.Context) ([]string, error) {
	rows, err := db.pool.Query(ctx, `SELECT name FROM resumes ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan resume name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	return names, nil
}

// DeleteResume removes a resume. Deleting a missing resume is not an error.
func (db *DB) DeleteResume(ctx context.Context, id string) error {
	rid, err := uuid.Parse(id)
	if err != nil {
		return nil
	}
	if _, err := db.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, rid); err != nil {
		return fmt.Errorf("failed to delete resume: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

func nameFailure(msg string) error {
	return &types.ValidationFailure{Details: []types.FieldError{{FieldPath: "name", Message: msg}}}
}
