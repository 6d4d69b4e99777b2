package submissions

import (
	"errors"
	"net/http"

	"github.com/RockeTall/CheckMate-demo/internal/grading"
)

// Domain errors for submission operations.
var (
	ErrNotFound          = errors.New("submission not found")
	ErrDuplicate         = errors.New("submission already exists")
	ErrInvalidSubmission = errors.New("invalid submission")
	ErrNoPages           = errors.New("no readable pages in upload")
	ErrFileTooLarge      = errors.New("upload exceeds maximum size")
)

// MapHTTPStatus maps submission domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidSubmission) || errors.Is(err, ErrNoPages) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrFileTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	if errors.Is(err, grading.ErrNoFiles) || errors.Is(err, grading.ErrInvalidMode) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
