package handler

// RESPONSE HELPERS:
// Two kinds of response leave this package:
//   - pages: HTML rendered through Renderer, with failures shown on an
//     error page carrying the same status code
//   - JSON: the check-in toggle and the search endpoint, written with
//     writeJSON / writeError
//
// Both paths use errorStatus, so a given domain error always maps to the
// same HTTP status.
//
// CONSISTENT ERROR FORMAT:
// Every JSON error has the same shape:
//   {"error": "not_found", "message": "event not found with id 12"}

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/study-organizer/internal/apperror"
)

// ErrorResponse is the JSON body of every failed JSON request.
type ErrorResponse struct {
	Error   string `json:"error"`   // Machine-readable error type (e.g., "not_found")
	Message string `json:"message"` // Human-readable description
}

// okResponse acknowledges an asynchronous update.
type okResponse struct {
	OK bool `json:"ok"`
}

const internalErrorMessage = "An internal error occurred"

// writeJSON sends a JSON response with the given status code.
//
// Headers and status must be set before the body is written; once Encode
// writes, header changes are silently ignored.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent, so logging is all that is left.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// errorStatus maps a domain error to an HTTP status and a machine-readable
// kind. Errors that carry no apperror kind are internal errors.
//
// errors.Is walks the whole chain, so this works through the service's
// fmt.Errorf("...: %w") wrapping:
//
//	service returns: fmt.Errorf("deleting grade: %w", apperror.NotFound(...))
//	which wraps:     AppError{Err: ErrNotFound, Message: "..."}
//	errors.Is walks: outer error → AppError → ErrNotFound ✓
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return http.StatusBadRequest, "validation_error"
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, apperror.ErrConflict):
		return http.StatusConflict, "conflict"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// writeError sends err as a JSON ErrorResponse.
//
// Raw store errors never reach the client: they can contain SQL or file
// paths. Only AppError messages are shown.
func writeError(w http.ResponseWriter, err error) {
	status, kind := errorStatus(err)
	writeJSON(w, status, ErrorResponse{
		Error:   kind,
		Message: apperror.Message(err, internalErrorMessage),
	})
}
