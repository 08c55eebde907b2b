// Package apperr defines the error taxonomy shared by the pipeline,
// the catalog and the HTTP layer.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidInput covers bad titles, disallowed MIME types and
	// malformed ranges. Rejected synchronously, before any side effect
	// survives.
	ErrInvalidInput = errors.New("invalid input")

	// ErrPayloadTooLarge is returned when a body exceeds its size cap or
	// arrives incomplete. Partial data is always deleted.
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrContentMismatch means the magic-byte or UTF-8 check failed for
	// the declared content type.
	ErrContentMismatch = errors.New("content does not match declared type")

	// ErrTranscodeFailed is an external encoder failure. Temp and partial
	// output files are deleted before it propagates.
	ErrTranscodeFailed = errors.New("transcode failed")

	// ErrNotFound covers unknown ids and upload ids. An ownership mismatch
	// on an upload session is deliberately reported as not found so the
	// existence of another user's in-progress upload does not leak.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the principal is authenticated but lacks rights
	// for a mutation.
	ErrForbidden = errors.New("forbidden")
)

// StatusOf maps a taxonomy error to an HTTP status code.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrContentMismatch):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
