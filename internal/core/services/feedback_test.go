package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
)

func TestFeedbackService_Record(t *testing.T) {
	store := &mockFeedbackStore{}
	service := NewFeedbackService(store)

	record, err := service.Record(context.Background(), domain.FeedbackRecord{
		Question:  "What did we quote Acme?",
		Answer:    "A fixed fee of $40k.",
		Rating:    domain.RatingGood,
		QueryType: domain.QueryTypePricing,
		ChunkIDs:  []string{"doc-1:0"},
	})

	require.NoError(t, err)
	assert.NotEmpty(t, record.ID)
	assert.False(t, record.CreatedAt.IsZero())
	assert.Equal(t, domain.QueryTypePricing, record.QueryType)
	require.Len(t, store.records, 1)
	assert.Equal(t, record.ID, store.records[0].ID)
}

func TestFeedbackService_Record_InvalidRating(t *testing.T) {
	service := NewFeedbackService(&mockFeedbackStore{})

	_, err := service.Record(context.Background(), domain.FeedbackRecord{
		Question: "q",
		Rating:   "meh",
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFeedbackService_Record_MissingQuestion(t *testing.T) {
	service := NewFeedbackService(&mockFeedbackStore{})

	_, err := service.Record(context.Background(), domain.FeedbackRecord{
		Question: "   ",
		Rating:   domain.RatingBad,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFeedbackService_Record_UnknownQueryType(t *testing.T) {
	store := &mockFeedbackStore{}
	service := NewFeedbackService(store)

	record, err := service.Record(context.Background(), domain.FeedbackRecord{
		Question:  "q",
		Rating:    domain.RatingGood,
		QueryType: "budgeting",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.QueryTypeUnknown, record.QueryType)
}

func TestFeedbackService_Record_KeepsProvidedIDAndTime(t *testing.T) {
	store := &mockFeedbackStore{}
	service := NewFeedbackService(store)
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	record, err := service.Record(context.Background(), domain.FeedbackRecord{
		ID:        "fb-1",
		Question:  "q",
		Rating:    domain.RatingGood,
		CreatedAt: created,
	})

	require.NoError(t, err)
	assert.Equal(t, "fb-1", record.ID)
	assert.Equal(t, created, record.CreatedAt)
}

func TestFeedbackService_Record_StoreError(t *testing.T) {
	store := &mockFeedbackStore{appendErr: errors.New("disk full")}
	service := NewFeedbackService(store)

	_, err := service.Record(context.Background(), domain.FeedbackRecord{
		Question: "q",
		Rating:   domain.RatingGood,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestFeedbackService_List(t *testing.T) {
	store := &mockFeedbackStore{
		records: []domain.FeedbackRecord{
			{ID: "fb-1", Question: "q1", Rating: domain.RatingGood},
			{ID: "fb-2", Question: "q2", Rating: domain.RatingBad},
		},
		malformed: 3,
	}
	service := NewFeedbackService(store)

	records, malformed, err := service.List(context.Background())

	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, 3, malformed)
}
