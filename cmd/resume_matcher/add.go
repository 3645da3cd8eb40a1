package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcusft/resume-matcher/internal/db"
	"github.com/marcusft/resume-matcher/internal/ingestion"
	"github.com/marcusft/resume-matcher/internal/llm"
	"github.com/marcusft/resume-matcher/internal/observability"
	"github.com/marcusft/resume-matcher/internal/parsing"
)

var (
	addResumeFile string

	addJobFile       string
	addJobURL        string
	addJobUseBrowser bool
	addVerbose       bool
)

var addResumeCmd = &cobra.Command{
	Use:   "add-resume",
	Short: "Upload a resume from a text or markdown file",
	Long:  `Read a resume file, extract its structured form with the LLM, and store both the raw and processed representations.`,
	RunE:  runAddResume,
}

var addJobCmd = &cobra.Command{
	Use:   "add-job",
	Short: "Upload a job description from a text file or URL",
	Long:  `Ingest a job description from a text file or job board URL, extract its structured form with the LLM, and store it for analysis.`,
	RunE:  runAddJob,
}

func init() {
	addResumeCmd.Flags().StringVarP(&addResumeFile, "file", "f", "", "Path to resume file (required)")
	addResumeCmd.Flags().BoolVarP(&addVerbose, "verbose", "v", false, "Print the parsed summary")
	addResumeCmd.MarkFlagRequired("file") //nolint:errcheck

	addJobCmd.Flags().StringVarP(&addJobFile, "file", "f", "", "Path to job posting text file")
	addJobCmd.Flags().StringVarP(&addJobURL, "url", "u", "", "URL to fetch the job posting from")
	addJobCmd.Flags().BoolVar(&addJobUseBrowser, "use-browser", false, "Render SPA job boards in a headless browser when needed")
	addJobCmd.Flags().BoolVarP(&addVerbose, "verbose", "v", false, "Print the parsed summary")

	rootCmd.AddCommand(addResumeCmd)
	rootCmd.AddCommand(addJobCmd)
}

func runAddResume(cmd *cobra.Command, _ []string) error {
	content, err := os.ReadFile(addResumeFile)
	if err != nil {
		return fmt.Errorf("failed to read resume file: %w", err)
	}

	database, client, err := connectServices(cmd.Context())
	if err != nil {
		return err
	}
	defer database.Close()
	defer client.Close() //nolint:errcheck

	structured, err := parsing.ParseResume(cmd.Context(), client, string(content))
	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}

	resumeID, err := database.CreateResume(cmd.Context(), string(content), "text/markdown")
	if err != nil {
		return fmt.Errorf("failed to store resume: %w", err)
	}
	if err := database.SaveProcessedResume(cmd.Context(), resumeID, structured, structured.ExtractedKeywords); err != nil {
		return fmt.Errorf("failed to store processed resume: %w", err)
	}

	if addVerbose {
		observability.NewPrinter(os.Stdout).PrintStructuredResume(structured)
	}
	fmt.Printf("Resume stored: %s\n", resumeID)
	return nil
}

func runAddJob(cmd *cobra.Command, _ []string) error {
	if (addJobFile == "") == (addJobURL == "") {
		return fmt.Errorf("exactly one of --file or --url must be provided")
	}

	var content string
	var err error
	if addJobFile != "" {
		content, _, err = ingestion.IngestFromFile(addJobFile)
		if err != nil {
			return fmt.Errorf("failed to ingest from file: %w", err)
		}
	} else {
		content, _, err = ingestion.IngestFromURL(cmd.Context(), addJobURL, addJobUseBrowser, addVerbose)
		if err != nil {
			return fmt.Errorf("failed to ingest from URL: %w", err)
		}
	}

	database, client, err := connectServices(cmd.Context())
	if err != nil {
		return err
	}
	defer database.Close()
	defer client.Close() //nolint:errcheck

	structured, err := parsing.ParseJob(cmd.Context(), client, content)
	if err != nil {
		return fmt.Errorf("failed to parse job description: %w", err)
	}

	jobID, err := database.CreateJob(cmd.Context(), content, addJobURL)
	if err != nil {
		return fmt.Errorf("failed to store job: %w", err)
	}
	if err := database.SaveProcessedJob(cmd.Context(), jobID, structured, structured.ExtractedKeywords); err != nil {
		return fmt.Errorf("failed to store processed job: %w", err)
	}

	if addVerbose {
		observability.NewPrinter(os.Stdout).PrintStructuredJob(structured)
	}
	fmt.Printf("Job stored: %s\n", jobID)
	return nil
}

// connectServices opens the database and LLM client from the environment.
func connectServices(ctx context.Context) (*db.DB, llm.Client, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	client, err := llm.NewClient(ctx, nil, apiKey)
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return database, client, nil
}
