package submit

import "fmt"

// NotFoundError is returned when a resume to edit does not exist
type NotFoundError struct {
	ResumeID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resume not found: %s", e.ResumeID)
}

// ModeError represents a submit request the orchestrator cannot serve in its current mode
type ModeError struct {
	Mode    Mode
	Message string
}

func (e *ModeError) Error() string {
	return fmt.Sprintf("cannot %s resume: %s", e.Mode, e.Message)
}

// StepError is returned when a submit is triggered away from the last step
type StepError struct {
	Step int
}

func (e *StepError) Error() string {
	return fmt.Sprintf("submit is only available from the last step (current step %d)", e.Step)
}

// DispatchError wraps a generic backend failure
type DispatchError struct {
	Mode  Mode
	Cause error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("failed to %s resume: %v", e.Mode, e.Cause)
}

func (e *DispatchError) Unwrap() error {
	return e.Cause
}
