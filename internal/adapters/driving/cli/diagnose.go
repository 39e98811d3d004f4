package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/clearbid-labs/propqa-cli/internal/analysis"
	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
)

var diagnoseCmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Diagnose answer quality from recorded feedback",
}

var diagnoseStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Global good/bad feedback tallies",
	Args:  cobra.NoArgs,
	RunE:  runDiagnoseStats,
}

var diagnoseQueryTypesCmd = &cobra.Command{
	Use:   "query-types",
	Short: "Success rates per query type",
	Args:  cobra.NoArgs,
	RunE:  runDiagnoseQueryTypes,
}

var diagnoseChunksCmd = &cobra.Command{
	Use:   "chunks",
	Short: "Chunks most often cited in bad answers",
	Args:  cobra.NoArgs,
	RunE:  runDiagnoseChunks,
}

var diagnoseSuggestionsCmd = &cobra.Command{
	Use:   "suggestions",
	Short: "Actionable recommendations from the feedback",
	Args:  cobra.NoArgs,
	RunE:  runDiagnoseSuggestions,
}

var diagnoseFullCmd = &cobra.Command{
	Use:   "full",
	Short: "Run every diagnostic section",
	Args:  cobra.NoArgs,
	RunE:  runDiagnoseFull,
}

func init() {
	diagnoseCmd.AddCommand(diagnoseStatsCmd)
	diagnoseCmd.AddCommand(diagnoseQueryTypesCmd)
	diagnoseCmd.AddCommand(diagnoseChunksCmd)
	diagnoseCmd.AddCommand(diagnoseSuggestionsCmd)
	diagnoseCmd.AddCommand(diagnoseFullCmd)
	rootCmd.AddCommand(diagnoseCmd)
}

func loadFeedback(cmd *cobra.Command) ([]domain.FeedbackRecord, error) {
	if feedbackService == nil {
		return nil, errors.New("feedback service not configured")
	}
	records, malformed, err := feedbackService.List(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("load feedback: %w", err)
	}
	if malformed > 0 {
		cmd.PrintErrf("Warning: skipped %d malformed feedback records\n", malformed)
	}
	return records, nil
}

func runDiagnoseStats(cmd *cobra.Command, _ []string) error {
	records, err := loadFeedback(cmd)
	if err != nil {
		return err
	}
	printStats(cmd, analysis.Summarize(records))
	return nil
}

func printStats(cmd *cobra.Command, sum analysis.Summary) {
	cmd.Println("Feedback summary")
	cmd.Printf("  total: %d\n", sum.Total)
	cmd.Printf("  good:  %d (%.1f%%)\n", sum.Good, sum.GoodPct)
	cmd.Printf("  bad:   %d (%.1f%%)\n", sum.Bad, sum.BadPct)
}

func runDiagnoseQueryTypes(cmd *cobra.Command, _ []string) error {
	records, err := loadFeedback(cmd)
	if err != nil {
		return err
	}
	printQueryTypes(cmd, analysis.ByQueryType(records))
	return nil
}

func printQueryTypes(cmd *cobra.Command, stats []analysis.QueryTypeStats) {
	cmd.Println("Per query type")
	if len(stats) == 0 {
		cmd.Println("  no feedback recorded")
		return
	}
	for _, st := range stats {
		cmd.Printf("  %-12s %d good / %d bad (%.0f%% success)\n",
			st.Type, st.Good, st.Bad, 100*st.SuccessRate)
		for _, reason := range st.RecentReasons {
			cmd.Printf("      reason: %s\n", reason)
		}
	}
}

func runDiagnoseChunks(cmd *cobra.Command, _ []string) error {
	records, err := loadFeedback(cmd)
	if err != nil {
		return err
	}
	printChunks(cmd, analysis.ProblemChunks(records))
	return nil
}

func printChunks(cmd *cobra.Command, problems []analysis.ChunkProblem) {
	cmd.Println("Problem chunks")
	if len(problems) == 0 {
		cmd.Println("  no chunks cited in bad answers")
		return
	}
	for _, cp := range problems {
		cmd.Printf("  %s cited in %d bad answers\n", cp.ChunkID, cp.BadCount)
		for _, q := range cp.Questions {
			cmd.Printf("      question: %s\n", q)
		}
	}
}

func runDiagnoseSuggestions(cmd *cobra.Command, _ []string) error {
	records, err := loadFeedback(cmd)
	if err != nil {
		return err
	}
	printSuggestions(cmd, analysis.Recommend(
		analysis.Summarize(records),
		analysis.ByQueryType(records),
		analysis.ProblemChunks(records),
	))
	return nil
}

func printSuggestions(cmd *cobra.Command, recs []analysis.Recommendation) {
	cmd.Println("Recommendations")
	for _, rec := range recs {
		cmd.Printf("  [%s] %s\n", rec.Severity, rec.Message)
	}
}

// runDiagnoseFull runs every section. A failing section is reported
// and the remaining sections still run.
func runDiagnoseFull(cmd *cobra.Command, args []string) error {
	sections := []struct {
		name string
		run  func(*cobra.Command, []string) error
	}{
		{"stats", runDiagnoseStats},
		{"query-types", runDiagnoseQueryTypes},
		{"chunks", runDiagnoseChunks},
		{"suggestions", runDiagnoseSuggestions},
	}

	var failed []string
	for i, section := range sections {
		if i > 0 {
			cmd.Println()
		}
		if err := section.run(cmd, args); err != nil {
			failed = append(failed, section.name)
			cmd.PrintErrf("Section %s failed: %v\n", section.name, err)
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("sections failed: %s", strings.Join(failed, ", "))
	}
	return nil
}
