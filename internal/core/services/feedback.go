package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
	"github.com/clearbid-labs/propqa-cli/internal/core/ports/driven"
	"github.com/clearbid-labs/propqa-cli/internal/core/ports/driving"
	"github.com/clearbid-labs/propqa-cli/internal/logger"
)

// Ensure FeedbackService implements the interface.
var _ driving.FeedbackService = (*FeedbackService)(nil)

// FeedbackService records and reads answer feedback.
type FeedbackService struct {
	store driven.FeedbackStore
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(store driven.FeedbackStore) *FeedbackService {
	return &FeedbackService{store: store}
}

// Record validates and appends a feedback record. Missing ID and
// timestamp are assigned; an unknown query-type label collapses into
// the unknown bucket.
func (s *FeedbackService) Record(ctx context.Context, record domain.FeedbackRecord) (*domain.FeedbackRecord, error) {
	if !record.Rating.Valid() {
		return nil, fmt.Errorf("rating must be %q or %q: %w", domain.RatingGood, domain.RatingBad, domain.ErrInvalidInput)
	}
	if strings.TrimSpace(record.Question) == "" {
		return nil, fmt.Errorf("question is required: %w", domain.ErrInvalidInput)
	}

	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now()
	}
	record.QueryType = domain.ParseQueryType(string(record.QueryType))

	if err := s.store.Append(ctx, record); err != nil {
		return nil, fmt.Errorf("append feedback: %w", err)
	}
	logger.Debug("Recorded %s feedback %s", record.Rating, record.ID)
	return &record, nil
}

// List returns a snapshot of all records plus the count of stored
// records skipped as undecodable.
func (s *FeedbackService) List(ctx context.Context) ([]domain.FeedbackRecord, int, error) {
	records, malformed, err := s.store.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list feedback: %w", err)
	}
	if malformed > 0 {
		logger.Warn("Skipped %d malformed feedback records", malformed)
	}
	return records, malformed, nil
}
