// Package llm - extractor.go provides generic LLM-based structured extraction.
package llm

import (
	"fmt"
	"strings"
)

// ExtractionSchema defines the structure for LLM-based content extraction.
// It provides a reusable way to define what information to extract from text.
type ExtractionSchema struct {
	Name        string        // Schema name (e.g., "StructuredResume")
	Description string        // System prompt preamble describing the extraction task
	Fields      []SchemaField // Expected output fields
}

// SchemaField defines a single field in the extraction output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint: "string", "[]string", "map[string]string"
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// BuildExtractionPrompt constructs the LLM prompt from schema and input text.
func BuildExtractionPrompt(schema ExtractionSchema, inputText string) string {
	var sb strings.Builder

	// System description
	sb.WriteString(schema.Description)
	sb.WriteString("\n\n")

	// Output schema
	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "string"
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n\n")

	// Instructions
	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- Extract information directly from the text, do not invent or summarize.\n")
	sb.WriteString("- Return ONLY the JSON object, no markdown, no explanation, no code blocks.\n\n")

	// Input text
	sb.WriteString("Input text:\n\"\"\"\n")
	sb.WriteString(inputText)
	sb.WriteString("\n\"\"\"\n")

	return sb.String()
}

// --- Predefined Schemas ---

// StructuredResumeSchema returns the extraction schema for uploaded resumes.
// Extracts contact data, experience, skills, education, and keywords.
func StructuredResumeSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "StructuredResume",
		Description: `You are an expert resume parser. COPY TEXT VERBATIM - do not paraphrase, summarize, or reword.
Your task is to extract and categorize information from a raw resume in markdown form.
IMPORTANT: Preserve the exact wording from the original text.
Goal: Extract personal data, work experience, projects, skills, education, and the most important skill keywords.`,
		Fields: []SchemaField{
			{
				Name:        "personal_data",
				Type:        "{\"first_name\": \"string\", \"last_name\": \"string\", \"email\": \"string\", \"phone\": \"string\", \"linkedin\": \"string\", \"portfolio\": \"string\", \"location\": \"string\"}",
				Description: "Contact information from the resume header",
				Required:    false,
			},
			{
				Name:        "experiences",
				Type:        "[{\"job_title\": \"string\", \"company\": \"string\", \"location\": \"string\", \"start_date\": \"string\", \"end_date\": \"string\", \"description\": [\"string\"], \"technologies_used\": [\"string\"]}]",
				Description: "Employment history, newest first - copy bullet text verbatim",
				Required:    true,
			},
			{
				Name:        "projects",
				Type:        "[{\"project_name\": \"string\", \"description\": \"string\", \"technologies_used\": [\"string\"], \"link\": \"string\"}]",
				Description: "Personal or professional projects",
				Required:    false,
			},
			{
				Name:        "skills",
				Type:        "[{\"category\": \"string\", \"skill_name\": \"string\"}]",
				Description: "Individual skills, one entry per skill",
				Required:    true,
			},
			{
				Name:        "achievements",
				Type:        "[\"string\"]",
				Description: "Awards, certifications, notable accomplishments",
				Required:    false,
			},
			{
				Name:        "education",
				Type:        "[{\"institution\": \"string\", \"degree\": \"string\", \"field_of_study\": \"string\", \"start_date\": \"string\", \"end_date\": \"string\"}]",
				Description: "Education history",
				Required:    false,
			},
			{
				Name:        "extracted_keywords",
				Type:        "[\"string\"]",
				Description: "The 15-30 most important skills and domain keywords present in the resume",
				Required:    true,
			},
		},
	}
}

// StructuredJobSchema returns the extraction schema for job descriptions.
// Extracts role metadata, responsibilities, qualifications, and keywords.
func StructuredJobSchema() ExtractionSchema {
	return ExtractionSchema{
		Name: "StructuredJob",
		Description: `You are an expert job posting parser. COPY TEXT VERBATIM - do not paraphrase, summarize, or reword.
Your task is to extract and categorize information from a raw job description.
IMPORTANT: Preserve the exact wording from the original text.
EXCLUDE: Application form fields, EEO statements, legal disclaimers.`,
		Fields: []SchemaField{
			{
				Name:        "job_title",
				Type:        "\"string\"",
				Description: "Role title",
				Required:    true,
			},
			{
				Name:        "company_name",
				Type:        "\"string\"",
				Description: "Hiring company name",
				Required:    false,
			},
			{
				Name:        "location",
				Type:        "\"string\"",
				Description: "Job location, including remote/hybrid designation",
				Required:    false,
			},
			{
				Name:        "employment_type",
				Type:        "\"string\"",
				Description: "Full-time, Part-time, Contract, Internship, Temporary, or Not Specified",
				Required:    false,
			},
			{
				Name:        "job_summary",
				Type:        "\"string\"",
				Description: "Role summary paragraph, verbatim",
				Required:    false,
			},
			{
				Name:        "key_responsibilities",
				Type:        "[\"string\"]",
				Description: "Job duties, day-to-day work - copy each responsibility verbatim",
				Required:    true,
			},
			{
				Name:        "qualifications",
				Type:        "{\"required\": [\"string\"], \"preferred\": [\"string\"]}",
				Description: "Required and preferred qualifications, verbatim",
				Required:    true,
			},
			{
				Name:        "salary_range",
				Type:        "\"string\"",
				Description: "Compensation range if stated",
				Required:    false,
			},
			{
				Name:        "is_remote",
				Type:        "bool",
				Description: "Whether the role is fully remote",
				Required:    false,
			},
			{
				Name:        "extracted_keywords",
				Type:        "[\"string\"]",
				Description: "The 15-30 most important skills and domain keywords the posting asks for",
				Required:    true,
			},
		},
	}
}
