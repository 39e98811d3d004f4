package driving

import (
	"context"

	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
)

// FeedbackService records and reads answer feedback.
type FeedbackService interface {
	// Record validates and appends a feedback record. The ID and
	// timestamp are assigned here when absent.
	Record(ctx context.Context, record domain.FeedbackRecord) (*domain.FeedbackRecord, error)

	// List returns a snapshot of all records plus the number of stored
	// records that could not be decoded and were skipped.
	List(ctx context.Context) ([]domain.FeedbackRecord, int, error)
}
