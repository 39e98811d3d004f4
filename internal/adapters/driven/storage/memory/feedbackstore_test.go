package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
)

func TestFeedbackStore_AppendAndList(t *testing.T) {
	store := NewFeedbackStore()
	ctx := context.Background()

	require.NoError(t, store.Append(ctx, domain.FeedbackRecord{ID: "fb-1", Question: "q1", Rating: domain.RatingGood}))
	require.NoError(t, store.Append(ctx, domain.FeedbackRecord{ID: "fb-2", Question: "q2", Rating: domain.RatingBad}))

	records, malformed, err := store.List(ctx)

	require.NoError(t, err)
	assert.Zero(t, malformed)
	require.Len(t, records, 2)
	assert.Equal(t, "fb-1", records[0].ID)
	assert.Equal(t, "fb-2", records[1].ID)
}

func TestFeedbackStore_ListReturnsSnapshot(t *testing.T) {
	store := NewFeedbackStore()
	ctx := context.Background()
	require.NoError(t, store.Append(ctx, domain.FeedbackRecord{ID: "fb-1"}))

	records, _, err := store.List(ctx)
	require.NoError(t, err)

	records[0].ID = "mutated"

	again, _, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, "fb-1", again[0].ID)
}
