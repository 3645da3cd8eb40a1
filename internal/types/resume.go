package types

// StructuredResume is the LLM-extracted structured form of an uploaded resume.
type StructuredResume struct {
	PersonalData      *PersonalData `json:"personal_data,omitempty"`
	Experiences       []Experience  `json:"experiences,omitempty"`
	Projects          []Project     `json:"projects,omitempty"`
	Skills            []Skill       `json:"skills,omitempty"`
	Achievements      []string      `json:"achievements,omitempty"`
	Education         []Education   `json:"education,omitempty"`
	ExtractedKeywords []string      `json:"extracted_keywords"`
}

// PersonalData holds contact information parsed from a resume header.
type PersonalData struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
	Location  string `json:"location,omitempty"`
}

// Experience is one employment entry.
type Experience struct {
	JobTitle         string   `json:"job_title"`
	Company          string   `json:"company,omitempty"`
	Location         string   `json:"location,omitempty"`
	StartDate        string   `json:"start_date,omitempty"`
	EndDate          string   `json:"end_date,omitempty"`
	Description      []string `json:"description,omitempty"`
	TechnologiesUsed []string `json:"technologies_used,omitempty"`
}

// Project is one project entry.
type Project struct {
	ProjectName      string   `json:"project_name"`
	Description      string   `json:"description,omitempty"`
	TechnologiesUsed []string `json:"technologies_used,omitempty"`
	Link             string   `json:"link,omitempty"`
}

// Skill is one categorized skill entry.
type Skill struct {
	Category  string `json:"category,omitempty"`
	SkillName string `json:"skill_name"`
}

// Education is one education entry.
type Education struct {
	Institution  string `json:"institution,omitempty"`
	Degree       string `json:"degree,omitempty"`
	FieldOfStudy string `json:"field_of_study,omitempty"`
	StartDate    string `json:"start_date,omitempty"`
	EndDate      string `json:"end_date,omitempty"`
}
