package grading

import (
	"errors"
	"net/http"
)

// Pipeline errors. Per-segment and per-file failures are folded into
// results rather than surfaced as errors; these cover input validation
// and the persistence boundary, which must not fail silently.
var (
	ErrNoFiles     = errors.New("no exam files submitted")
	ErrInvalidMode = errors.New("invalid grading mode")
	ErrMemoryWrite = errors.New("correction store write failed")
)

// MapHTTPStatus maps pipeline errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNoFiles) || errors.Is(err, ErrInvalidMode) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
