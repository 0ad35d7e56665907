package service

import (
	"errors"

	"github.com/maheshrc27/approvals-api/internal/repository"
)

var (
	ErrNotFound          = repository.ErrNotFound
	ErrMutationInFlight  = repository.ErrMutationInFlight
	ErrForbidden         = errors.New("you are not allowed to perform this action")
	ErrInvalidTransition = errors.New("this action is not available in the current status")
)

// ValidationError is a caller-side precondition failure. Nothing has been
// sent to the bridge when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}
