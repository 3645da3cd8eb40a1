package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/marcusft/resume-matcher/internal/ingestion"
	"github.com/marcusft/resume-matcher/internal/parsing"
	"github.com/marcusft/resume-matcher/internal/types"
)

// UploadJobRequest represents the request body for POST /api/v1/jobs.
// Exactly one of content or url must be set.
type UploadJobRequest struct {
	Content string `json:"content,omitempty"`
	URL     string `json:"url,omitempty"`
}

// UploadJobResponse represents the response after job intake
type UploadJobResponse struct {
	JobID      string               `json:"job_id"`
	Structured *types.StructuredJob `json:"structured"`
	Keywords   []string             `json:"keywords"`
	Platform   string               `json:"platform,omitempty"`
}

// handleUploadJob stores a job description, supplied inline or fetched from
// a job board URL, extracts its structured form, and persists the processed
// result for analysis.
func (s *Server) handleUploadJob(w http.ResponseWriter, r *http.Request) {
	var req UploadJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	hasContent := strings.TrimSpace(req.Content) != ""
	hasURL := strings.TrimSpace(req.URL) != ""
	if hasContent == hasURL {
		s.errorResponse(w, http.StatusBadRequest, "Exactly one of content or url is required")
		return
	}

	content := req.Content
	platform := ""
	if hasURL {
		fetched, metadata, err := ingestion.IngestFromURL(r.Context(), req.URL, s.useBrowser, false)
		if err != nil {
			s.errorResponse(w, http.StatusBadGateway, "Failed to fetch job posting: "+err.Error())
			return
		}
		content = fetched
		platform = metadata.Platform
	}

	structured, err := parsing.ParseJob(r.Context(), s.llm, content)
	if err != nil {
		s.errorResponse(w, http.StatusUnprocessableEntity, "Failed to parse job description: "+err.Error())
		return
	}

	jobID, err := s.db.CreateJob(r.Context(), content, req.URL)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to store job: "+err.Error())
		return
	}

	if err := s.db.SaveProcessedJob(r.Context(), jobID, structured, structured.ExtractedKeywords); err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to store processed job: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, UploadJobResponse{
		JobID:      jobID.String(),
		Structured: structured,
		Keywords:   structured.ExtractedKeywords,
		Platform:   platform,
	})
}

// handleGetJob returns a raw job with its processed form when available
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.db.GetJob(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch job: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	processed, err := s.db.GetProcessedJob(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch processed job: "+err.Error())
		return
	}

	response := map[string]any{"job": job}
	if processed != nil {
		response["structured"] = processed.Structured
		response["keywords"] = processed.Keywords
	}
	s.jsonResponse(w, http.StatusOK, response)
}

// handleListJobs returns recent jobs, newest first
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	limit := parseLimit(r, 50)

	jobs, err := s.db.ListJobs(r.Context(), limit)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list jobs: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"count": len(jobs),
	})
}
