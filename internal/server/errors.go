// Package server provides the HTTP REST API for the resume matcher.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/marcusft/resume-matcher/internal/analysis"
)

// ErrEmailAlreadyExists indicates email is already registered
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// ErrUserNotFound indicates user was not found
type ErrUserNotFound struct {
	UserID uuid.UUID
}

func (e *ErrUserNotFound) Error() string {
	return fmt.Sprintf("user not found: %s", e.UserID)
}

// ErrPasswordMismatch indicates current password is incorrect
type ErrPasswordMismatch struct{}

func (e *ErrPasswordMismatch) Error() string {
	return "current password is incorrect"
}

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an auth error
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials, *ErrPasswordMismatch:
		return http.StatusUnauthorized
	case *ErrUserNotFound:
		return http.StatusNotFound
	case *ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// AnalysisHTTPStatus maps analysis pipeline errors to HTTP status codes.
// Missing inputs map to 404, inputs that exist but cannot be analyzed map
// to 422, anything else is a 500.
func AnalysisHTTPStatus(err error) int {
	var resumeNotFound *analysis.ResumeNotFoundError
	var jobNotFound *analysis.JobNotFoundError
	if errors.As(err, &resumeNotFound) || errors.As(err, &jobNotFound) {
		return http.StatusNotFound
	}

	var resumeParsing *analysis.ResumeParsingError
	var jobParsing *analysis.JobParsingError
	var resumeKeywords *analysis.ResumeKeywordExtractionError
	var jobKeywords *analysis.JobKeywordExtractionError
	if errors.As(err, &resumeParsing) || errors.As(err, &jobParsing) ||
		errors.As(err, &resumeKeywords) || errors.As(err, &jobKeywords) {
		return http.StatusUnprocessableEntity
	}

	return http.StatusInternalServerError
}
