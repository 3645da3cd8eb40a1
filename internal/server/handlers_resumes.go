package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/marcusft/resume-matcher/internal/parsing"
	"github.com/marcusft/resume-matcher/internal/types"
)

// UploadResumeRequest represents the request body for POST /api/v1/resumes
type UploadResumeRequest struct {
	Content     string `json:"content"`
	ContentType string `json:"content_type,omitempty"`
}

// UploadResumeResponse represents the response after resume intake
type UploadResumeResponse struct {
	ResumeID   string                 `json:"resume_id"`
	Structured *types.StructuredResume `json:"structured"`
	Keywords   []string               `json:"keywords"`
}

// handleUploadResume stores a raw resume, extracts its structured form, and
// persists the processed result so later analysis runs can reuse it.
func (s *Server) handleUploadResume(w http.ResponseWriter, r *http.Request) {
	var req UploadResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		s.errorResponse(w, http.StatusBadRequest, "content is required")
		return
	}
	if req.ContentType == "" {
		req.ContentType = "text/markdown"
	}

	structured, err := parsing.ParseResume(r.Context(), s.llm, req.Content)
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, "Failed to parse resume: "+err.Error())
		return
	}

	resumeID, err := s.db.CreateResume(r.Context(), req.Content, req.ContentType)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to store resume: "+err.Error())
		return
	}

	if err := s.db.SaveProcessedResume(r.Context(), resumeID, structured, structured.ExtractedKeywords); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to store processed resume: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, UploadResumeResponse{
		ResumeID:   resumeID.String(),
		Structured: structured,
		Keywords:   structured.ExtractedKeywords,
	})
}

// handleGetResume returns a raw resume with its processed form when available
func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid resume ID")
		return
	}

	resume, err := s.db.GetResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch resume: "+err.Error())
		return
	}
	if resume == nil {
		s.errorResponse(w, http.StatusNotFound, "Resume not found")
		return
	}

	processed, err := s.db.GetProcessedResume(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch processed resume: "+err.Error())
		return
	}

	response := map[string]any{"resume": resume}
	if processed != nil {
		response["structured"] = processed.Structured
		response["keywords"] = processed.Keywords
	}
	s.jsonResponse(w, http.StatusOK, response)
}

// handleListResumes returns recent resumes, newest first
func (s *Server) handleListResumes(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 50)

	resumes, err := s.db.ListResumes(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list resumes: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"resumes": resumes,
		"count":   len(resumes),
	})
}

// parseLimit reads the limit query parameter, falling back to a default
func parseLimit(r *http.Request, fallback int) int {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return fallback
	}
	return limit
}
