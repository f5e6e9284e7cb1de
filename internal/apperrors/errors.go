package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrConflict indicates that the operation conflicts with the current state
// of the resource (illegal status transition, referenced resource, etc.).
var ErrConflict = errors.New("conflict with current state")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrRetriable indicates a transient storage failure (serialization conflict,
// lock timeout). The whole operation is safe to retry from scratch because
// every write path is an all-or-nothing unit.
var ErrRetriable = errors.New("transient storage error, retry the operation")

// ErrInternal indicates an unexpected internal failure.
var ErrInternal = errors.New("internal error")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// AppError wraps an underlying error with an HTTP-ish status code and a
// message suitable for logging. Use errors.Is against the sentinel errors
// above for classification.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError wrapping err.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError creates an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: 404, Message: message, Err: ErrNotFound}
}

// NewRetriableError creates an AppError that matches ErrRetriable.
func NewRetriableError(message string, err error) *AppError {
	return &AppError{Code: 503, Message: message, Err: fmt.Errorf("%w: %w", ErrRetriable, err)}
}
