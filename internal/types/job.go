package types

// StructuredJob is the LLM-extracted structured form of a job description.
type StructuredJob struct {
	JobTitle            string          `json:"job_title,omitempty"`
	CompanyName         string          `json:"company_name,omitempty"`
	Location            string          `json:"location,omitempty"`
	EmploymentType      string          `json:"employment_type,omitempty"`
	JobSummary          string          `json:"job_summary,omitempty"`
	KeyResponsibilities []string        `json:"key_responsibilities,omitempty"`
	Qualifications      *Qualifications `json:"qualifications,omitempty"`
	SalaryRange         string          `json:"salary_range,omitempty"`
	IsRemote            bool            `json:"is_remote,omitempty"`
	ExtractedKeywords   []string        `json:"extracted_keywords"`
}

// Qualifications separates required from preferred job qualifications.
type Qualifications struct {
	Required  []string `json:"required,omitempty"`
	Preferred []string `json:"preferred,omitempty"`
}
