package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrCollaborator = errors.New("collaborator failure")
)

// CollaboratorError reports a collaborator that still failed after retries,
// or failed permanently.
type CollaboratorError struct {
	Collaborator string
	Attempts     int
	Err          error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s failed after %d attempt(s): %v", e.Collaborator, e.Attempts, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

func (e *CollaboratorError) Is(target error) bool { return target == ErrCollaborator }
