package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
)

var (
	feedbackQuestion string
	feedbackAnswer   string
	feedbackRating   string
	feedbackType     string
	feedbackChunks   []string
	feedbackReason   string
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback",
	Short: "Record feedback on drafted answers",
}

var feedbackAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record whether an answer was good or bad",
	Args:  cobra.NoArgs,
	RunE:  runFeedbackAdd,
}

func init() {
	feedbackAddCmd.Flags().StringVar(&feedbackQuestion, "question", "", "the question that was asked (required)")
	feedbackAddCmd.Flags().StringVar(&feedbackAnswer, "answer", "", "the answer that was given")
	feedbackAddCmd.Flags().StringVar(&feedbackRating, "rating", "", "good or bad (required)")
	feedbackAddCmd.Flags().StringVar(&feedbackType, "type", "", "query type (pricing, timeline, approach, technical, experience)")
	feedbackAddCmd.Flags().StringSliceVar(&feedbackChunks, "chunks", nil, "chunk ids cited by the answer")
	feedbackAddCmd.Flags().StringVar(&feedbackReason, "reason", "", "why the answer was bad")

	feedbackCmd.AddCommand(feedbackAddCmd)
	rootCmd.AddCommand(feedbackCmd)
}

func runFeedbackAdd(cmd *cobra.Command, _ []string) error {
	if feedbackService == nil {
		return errors.New("feedback service not configured")
	}

	record, err := feedbackService.Record(cmd.Context(), domain.FeedbackRecord{
		Question:  feedbackQuestion,
		Answer:    feedbackAnswer,
		Rating:    domain.Rating(feedbackRating),
		QueryType: domain.QueryType(feedbackType),
		ChunkIDs:  feedbackChunks,
		Reason:    feedbackReason,
	})
	if err != nil {
		return fmt.Errorf("record feedback: %w", err)
	}
	cmd.Printf("Recorded feedback %s\n", record.ID)
	return nil
}
