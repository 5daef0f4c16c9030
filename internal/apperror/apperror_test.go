// Run with: go test ./internal/apperror/ -v
package apperror

import (
	"errors"
	"fmt"
	"testing"
)

// TABLE-DRIVEN TESTS:
// Each case checks that errors.Is() identifies the kind through the AppError
// wrapper, and that kinds do not bleed into each other.
func TestErrorsIs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
	}{
		{
			name:      "NotFound wraps ErrNotFound",
			err:       NotFound("event", 42),
			target:    ErrNotFound,
			wantMatch: true,
		},
		{
			name:      "ValidationFailed wraps ErrValidation",
			err:       ValidationFailed("start_dt", "start_dt must be a date and time"),
			target:    ErrValidation,
			wantMatch: true,
		},
		{
			name:      "Conflict wraps ErrConflict",
			err:       Conflict("checkin", "2024-05-10"),
			target:    ErrConflict,
			wantMatch: true,
		},
		{
			name:      "NotFound does NOT match ErrValidation",
			err:       NotFound("grade", 7),
			target:    ErrValidation,
			wantMatch: false,
		},
		{
			name:      "wrapped with fmt.Errorf still matches",
			err:       fmt.Errorf("deleting event: %w", NotFound("event", 3)),
			target:    ErrNotFound,
			wantMatch: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errors.Is(tt.err, tt.target)
			if got != tt.wantMatch {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.wantMatch)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name        string
		err         *AppError
		wantMessage string
	}{
		{
			name:        "NotFound message includes resource and id",
			err:         NotFound("question", 12),
			wantMessage: "question not found with id 12",
		},
		{
			name:        "ValidationFailed uses custom message",
			err:         ValidationFailed("score", "score must be a number"),
			wantMessage: "score must be a number",
		},
		{
			name:        "Conflict message includes resource and key",
			err:         Conflict("checkin", "2024-05-10"),
			wantMessage: "checkin conflict on 2024-05-10",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMessage {
				t.Errorf("Error() = %q, want %q", got, tt.wantMessage)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	err := NotFound("grade", 1)
	if unwrapped := err.Unwrap(); unwrapped != ErrNotFound {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, ErrNotFound)
	}
}

func TestValidationFailedField(t *testing.T) {
	err := ValidationFailed("the_date", "the_date must be YYYY-MM-DD")
	if err.Field != "the_date" {
		t.Errorf("Field = %q, want %q", err.Field, "the_date")
	}
}

func TestKindHelpers(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", Conflict("checkin", "2024-01-01"))

	if !IsConflict(wrapped) {
		t.Error("IsConflict() = false, want true")
	}
	if IsNotFound(wrapped) || IsValidation(wrapped) {
		t.Error("conflict error matched another kind")
	}
}

func TestMessage(t *testing.T) {
	if got := Message(fmt.Errorf("x: %w", ValidationFailed("m", "month must be between 1 and 12")), "fallback"); got != "month must be between 1 and 12" {
		t.Errorf("Message() = %q", got)
	}
	if got := Message(errors.New("disk I/O error"), "fallback"); got != "fallback" {
		t.Errorf("Message() = %q, want fallback for raw errors", got)
	}
}
