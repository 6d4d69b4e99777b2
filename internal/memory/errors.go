package memory

import (
	"errors"
	"net/http"
)

// Domain errors for correction store operations.
var (
	ErrNotFound      = errors.New("correction record not found")
	ErrInvalidRecord = errors.New("invalid correction record")
)

// MapHTTPStatus maps correction store errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrInvalidRecord) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
