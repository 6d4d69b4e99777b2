package exams

import (
	"errors"
	"net/http"
)

// Domain errors for exam operations.
var (
	ErrNotFound    = errors.New("exam not found")
	ErrDuplicate   = errors.New("exam already exists")
	ErrInvalidExam = errors.New("invalid exam")
	ErrExtraction  = errors.New("question sheet extraction failed")
	ErrGeneration  = errors.New("practice generation failed")
)

// MapHTTPStatus maps exam domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalidExam) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrExtraction) || errors.Is(err, ErrGeneration) {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
