package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/marcusft/resume-matcher/internal/analysis"
	"github.com/marcusft/resume-matcher/internal/observability"
	"github.com/marcusft/resume-matcher/internal/types"
)

var (
	analyzeResumeID string
	analyzeJobID    string
	analyzeAgain    bool
	analyzeStream   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a resume against a job description",
	Long: `Run the compatibility analysis for a stored (resume, job) pair.
A cached artifact is returned without recomputation unless --force-reanalyze is set.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeResumeID, "resume", "r", "", "Resume ID (required)")
	analyzeCmd.Flags().StringVarP(&analyzeJobID, "job", "j", "", "Job ID (required)")
	analyzeCmd.Flags().BoolVar(&analyzeAgain, "force-reanalyze", false, "Recompute even when a cached artifact exists")
	analyzeCmd.Flags().BoolVar(&analyzeStream, "stream", false, "Print progress events as the analysis runs")
	analyzeCmd.MarkFlagRequired("resume") //nolint:errcheck
	analyzeCmd.MarkFlagRequired("job")    //nolint:errcheck
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	database, client, err := connectServices(cmd.Context())
	if err != nil {
		return err
	}
	defer database.Close()
	defer client.Close() //nolint:errcheck

	orchestrator := analysis.NewOrchestrator(database, analysis.NewPipeline(database, client))
	printer := observability.NewPrinter(os.Stdout)

	if analyzeStream {
		var result *types.Improvement
		err := orchestrator.ResolveStream(cmd.Context(), analyzeResumeID, analyzeJobID, analyzeAgain,
			func(event types.AnalysisEvent) error {
				printer.PrintEvent(event)
				if event.Status == types.StatusCompleted {
					result = event.Result
				}
				return nil
			})
		if err != nil {
			return fmt.Errorf("analysis failed: %w", err)
		}
		printer.PrintImprovement(result)
		return nil
	}

	improvement, err := orchestrator.Resolve(cmd.Context(), analyzeResumeID, analyzeJobID, analyzeAgain)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	printer.PrintImprovement(improvement)
	return nil
}
