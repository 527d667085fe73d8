package service

import (
	"errors"
	"fmt"

	"user-dashboard-service/internal/repository"
)

// ValidationError reports a request that is missing or has malformed fields.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NotFoundError reports an operation on a user or account that does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// StorageError wraps a failure of the underlying store.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *StorageError) Unwrap() error { return e.Err }

// ErrSessionInvalid is returned when a token is not the live session of its owner.
var ErrSessionInvalid = errors.New("session not found")

// storageErr maps repository.ErrNotFound to a NotFoundError with notFoundMsg
// and wraps every other error in a StorageError.
func storageErr(op string, err error, notFoundMsg string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return &NotFoundError{Message: notFoundMsg}
	}
	return &StorageError{Op: op, Err: err}
}
