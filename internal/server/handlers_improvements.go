package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/marcusft/resume-matcher/internal/db"
	"github.com/marcusft/resume-matcher/internal/types"
)

// ImproveRequest represents the request body for the improve endpoints
type ImproveRequest struct {
	ResumeID     string `json:"resume_id"`
	JobID        string `json:"job_id"`
	AnalyzeAgain bool   `json:"analyze_again,omitempty"`
}

func (req *ImproveRequest) validate() string {
	if req.ResumeID == "" {
		return "resume_id is required"
	}
	if req.JobID == "" {
		return "job_id is required"
	}
	return ""
}

// handleImprove runs (or serves the cached result of) a full analysis for a
// (resume, job) pair and returns the artifact in one response.
func (s *Server) handleImprove(w http.ResponseWriter, r *http.Request) {
	var req ImproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		s.errorResponse(w, http.StatusBadRequest, msg)
		return
	}

	improvement, err := s.resolver.Resolve(r.Context(), req.ResumeID, req.JobID, req.AnalyzeAgain)
	if err != nil {
		s.errorResponse(w, AnalysisHTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, improvement)
}

// handleImproveStream runs the analysis for a (resume, job) pair and streams
// progress events over SSE. A cached artifact produces a single completed
// event. On failure an error event is sent and the stream ends without a
// completed event.
func (s *Server) handleImproveStream(w http.ResponseWriter, r *http.Request) {
	var req ImproveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if msg := req.validate(); msg != "" {
		s.errorResponse(w, http.StatusBadRequest, msg)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	err = s.resolver.ResolveStream(r.Context(), req.ResumeID, req.JobID, req.AnalyzeAgain,
		func(event types.AnalysisEvent) error {
			return sse.WriteEvent(event.Status, event)
		})
	if err != nil {
		log.Printf("Streaming analysis failed for resume=%s job=%s: %v", req.ResumeID, req.JobID, err)
		sse.WriteError(err.Error())
	}
}

// handleGetImprovement returns a stored analysis artifact by its row ID
func (s *Server) handleGetImprovement(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid improvement ID")
		return
	}

	improvement, err := s.db.GetImprovementByID(r.Context(), id)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to fetch improvement: "+err.Error())
		return
	}
	if improvement == nil {
		s.errorResponse(w, http.StatusNotFound, "Improvement not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, improvement)
}

// handleListImprovements returns stored artifacts, optionally filtered by
// resume_id and job_id query parameters.
func (s *Server) handleListImprovements(w http.ResponseWriter, r *http.Request) {
	filters := db.ImprovementFilters{
		ResumeID: r.URL.Query().Get("resume_id"),
		JobID:    r.URL.Query().Get("job_id"),
		Limit:    parseLimit(r, 50),
	}

	improvements, err := s.db.ListImprovements(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list improvements: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"improvements": improvements,
		"count":        len(improvements),
	})
}
