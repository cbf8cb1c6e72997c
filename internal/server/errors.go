package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-wizard/internal/submit"
	"github.com/jonathan/resume-wizard/internal/types"
	"github.com/jonathan/resume-wizard/internal/validation"
)

// ErrSessionNotFound indicates the session id is unknown or was discarded
type ErrSessionNotFound struct {
	SessionID string
}

func (e *ErrSessionNotFound) Error() string {
	return fmt.Sprintf("session not found: %s", e.SessionID)
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		sessionErr  *ErrSessionNotFound
		notFoundErr *submit.NotFoundError
		validErr    *ErrValidation
		failure     *types.ValidationFailure
		modeErr     *submit.ModeError
		checkErr    *validation.Error
	)
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &sessionErr), errors.As(err, &notFoundErr):
		return http.StatusNotFound
	case errors.As(err, &validErr), errors.As(err, &checkErr):
		return http.StatusBadRequest
	case errors.As(err, &failure), errors.As(err, &modeErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
