package server

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/marcusft/resume-matcher/internal/analysis"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"email exists", &ErrEmailAlreadyExists{Email: "a@b.com"}, http.StatusConflict},
		{"invalid credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"password mismatch", &ErrPasswordMismatch{}, http.StatusUnauthorized},
		{"user not found", &ErrUserNotFound{UserID: uuid.New()}, http.StatusNotFound},
		{"validation", &ErrValidation{Field: "email", Message: "invalid"}, http.StatusBadRequest},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestAnalysisHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"resume not found", &analysis.ResumeNotFoundError{ResumeID: "r-1"}, http.StatusNotFound},
		{"job not found", &analysis.JobNotFoundError{JobID: "j-1"}, http.StatusNotFound},
		{"resume parsing", &analysis.ResumeParsingError{ResumeID: "r-1"}, http.StatusUnprocessableEntity},
		{"job parsing", &analysis.JobParsingError{JobID: "j-1"}, http.StatusUnprocessableEntity},
		{"resume keywords", &analysis.ResumeKeywordExtractionError{ResumeID: "r-1"}, http.StatusUnprocessableEntity},
		{"job keywords", &analysis.JobKeywordExtractionError{JobID: "j-1"}, http.StatusUnprocessableEntity},
		{"plain error", errors.New("database unavailable"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnalysisHTTPStatus(tt.err))
		})
	}
}

func TestAnalysisHTTPStatus_Wrapped(t *testing.T) {
	wrapped := fmt.Errorf("analysis failed: %w", &analysis.JobNotFoundError{JobID: "j-1"})
	assert.Equal(t, http.StatusNotFound, AnalysisHTTPStatus(wrapped))
}

func TestErrorMessages(t *testing.T) {
	assert.Contains(t, (&ErrEmailAlreadyExists{Email: "a@b.com"}).Error(), "a@b.com")
	assert.Equal(t, "invalid email or password", (&ErrInvalidCredentials{}).Error())
	assert.Equal(t, "current password is incorrect", (&ErrPasswordMismatch{}).Error())

	id := uuid.New()
	assert.Contains(t, (&ErrUserNotFound{UserID: id}).Error(), id.String())
	assert.Contains(t, (&ErrValidation{Field: "email", Message: "invalid"}).Error(), "email")
}
