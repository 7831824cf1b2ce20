package grading

import (
	"fmt"
)

// MsgInternal is the only detail an internal failure exposes to clients.
const MsgInternal = "Internal server error"

// ValidationError means the request is missing a field or carries an
// unusable value. It is safe to show to the caller.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ScoringError reports a score that came out non-finite or outside [0, 1].
type ScoringError struct {
	Err error
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("scoring: %v", e.Err)
}

func (e *ScoringError) Unwrap() error {
	return e.Err
}

// InternalError wraps any unexpected failure after validation. Callers log
// it and answer with MsgInternal.
type InternalError struct {
	Stage Stage
	Err   error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error while %s: %v", e.Stage, e.Err)
}

func (e *InternalError) Unwrap() error {
	return e.Err
}
