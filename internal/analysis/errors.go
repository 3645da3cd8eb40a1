package analysis

import "fmt"

// ResumeNotFoundError indicates the resume ID does not resolve to a stored resume
type ResumeNotFoundError struct {
	ResumeID string
}

func (e *ResumeNotFoundError) Error() string {
	return fmt.Sprintf("resume not found: %s", e.ResumeID)
}

// JobNotFoundError indicates the job ID does not resolve to a stored job description
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job not found: %s", e.JobID)
}

// ResumeParsingError indicates the resume exists but has no usable structured form
type ResumeParsingError struct {
	ResumeID string
	Cause    error
}

func (e *ResumeParsingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to parse resume %s: %v", e.ResumeID, e.Cause)
	}
	return fmt.Sprintf("failed to parse resume %s", e.ResumeID)
}

func (e *ResumeParsingError) Unwrap() error {
	return e.Cause
}

// JobParsingError indicates the job exists but has no usable structured form
type JobParsingError struct {
	JobID string
	Cause error
}

func (e *JobParsingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to parse job %s: %v", e.JobID, e.Cause)
	}
	return fmt.Sprintf("failed to parse job %s", e.JobID)
}

func (e *JobParsingError) Unwrap() error {
	return e.Cause
}

// ResumeKeywordExtractionError indicates no keywords could be derived from the resume
type ResumeKeywordExtractionError struct {
	ResumeID string
	Cause    error
}

func (e *ResumeKeywordExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to extract keywords from resume %s: %v", e.ResumeID, e.Cause)
	}
	return fmt.Sprintf("failed to extract keywords from resume %s", e.ResumeID)
}

func (e *ResumeKeywordExtractionError) Unwrap() error {
	return e.Cause
}

// JobKeywordExtractionError indicates no keywords could be derived from the job description
type JobKeywordExtractionError struct {
	JobID string
	Cause error
}

func (e *JobKeywordExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to extract keywords from job %s: %v", e.JobID, e.Cause)
	}
	return fmt.Sprintf("failed to extract keywords from job %s", e.JobID)
}

func (e *JobKeywordExtractionError) Unwrap() error {
	return e.Cause
}
