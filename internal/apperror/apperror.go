// Package apperror defines the domain error kinds shared by the store, the
// services and the HTTP layer.
//
// Three kinds exist:
//   - NotFound:   a referenced id (event, question, grade, subject) is absent
//   - Validation: form or query input could not be parsed or is not allowed
//   - Conflict:   a uniqueness constraint was hit (duplicate check-in day)
//
// Each kind is a sentinel error. Constructors wrap the sentinel inside an
// *AppError that carries a human-readable message, so callers can test the
// kind with errors.Is and read the message with errors.As.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrConflict   = errors.New("conflict")
)

type AppError struct {
	Err     error  // sentinel kind
	Message string // Human-readable error message
	Field   string // Optional: form field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that no resource of the given kind exists with id.
func NotFound(resource string, id any) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %v", resource, id),
	}
}

// ValidationFailed reports malformed or disallowed input for field.
// HTTP handlers map this to 400 Bad Request and show message to the user.
func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

func Conflict(resource string, key any) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s conflict on %v", resource, key),
	}
}

func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
func IsConflict(err error) bool   { return errors.Is(err, ErrConflict) }

// Message returns the user-facing message carried by err, or fallback when err
// is not an *AppError. Raw store errors never reach the user.
func Message(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return fallback
}
