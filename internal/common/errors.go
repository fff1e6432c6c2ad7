// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Schema errors.
	ErrMissingColumn = errors.New("required column missing")
	ErrMissingLabel  = errors.New("training label missing")
	ErrInvalidLabel  = errors.New("training label not an integer")

	// Artifact errors.
	ErrArtifactNotFound = errors.New("model artifact not found")
	ErrArtifactCorrupt  = errors.New("model artifact corrupt")
	ErrSchemaMismatch   = errors.New("feature schema mismatch")

	// Training errors.
	ErrNotFitted      = errors.New("vectorizer not fitted")
	ErrAlreadyFitted  = errors.New("vectorizer already fitted")
	ErrLabelImbalance = errors.New("too few examples per class for a stratified split")
	ErrEmptyBatch     = errors.New("empty listing batch")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
