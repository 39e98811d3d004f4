package analysis

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
)

func record(rating domain.Rating, qt domain.QueryType, chunkIDs ...string) domain.FeedbackRecord {
	return domain.FeedbackRecord{
		Question:  "how long does a rollout take?",
		Rating:    rating,
		QueryType: qt,
		ChunkIDs:  chunkIDs,
	}
}

func TestSummarizePercentagesSumTo100(t *testing.T) {
	records := []domain.FeedbackRecord{
		record(domain.RatingGood, domain.QueryTypeTimeline),
		record(domain.RatingGood, domain.QueryTypePricing),
		record(domain.RatingBad, domain.QueryTypeTimeline),
	}
	s := Summarize(records)

	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Good)
	assert.Equal(t, 1, s.Bad)
	assert.InDelta(t, 100.0, s.GoodPct+s.BadPct, 1e-9)
}

func TestSummarizeEmptySet(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.Total)
	assert.Zero(t, s.GoodPct)
	assert.Zero(t, s.BadPct)
}

func TestSummarizeIgnoresInvalidRatings(t *testing.T) {
	records := []domain.FeedbackRecord{
		record(domain.RatingGood, domain.QueryTypeTimeline),
		record(domain.Rating("meh"), domain.QueryTypeTimeline),
	}
	s := Summarize(records)
	assert.Equal(t, 1, s.Total)
}

func TestByQueryTypeUnknownBucket(t *testing.T) {
	records := []domain.FeedbackRecord{
		record(domain.RatingGood, domain.QueryTypeTimeline),
		record(domain.RatingBad, ""), // missing type is not dropped
		record(domain.RatingBad, domain.QueryTypeUnknown),
	}
	stats := ByQueryType(records)
	require.Len(t, stats, 2)

	byType := make(map[domain.QueryType]QueryTypeStats)
	for _, st := range stats {
		byType[st.Type] = st
	}
	assert.Equal(t, 2, byType[domain.QueryTypeUnknown].Bad)
	assert.Equal(t, 1, byType[domain.QueryTypeTimeline].Good)
	assert.InDelta(t, 1.0, byType[domain.QueryTypeTimeline].SuccessRate, 1e-9)
	assert.Zero(t, byType[domain.QueryTypeUnknown].SuccessRate)
}

func TestByQueryTypeRecentReasonsBounded(t *testing.T) {
	var records []domain.FeedbackRecord
	for i := 0; i < 5; i++ {
		r := record(domain.RatingBad, domain.QueryTypePricing)
		r.Reason = fmt.Sprintf("reason-%d", i)
		records = append(records, r)
	}
	stats := ByQueryType(records)
	require.Len(t, stats, 1)
	// Oldest reasons are evicted first.
	assert.Equal(t, []string{"reason-2", "reason-3", "reason-4"}, stats[0].RecentReasons)
}

func TestProblemChunksRankingAndTieBreak(t *testing.T) {
	records := []domain.FeedbackRecord{
		record(domain.RatingBad, domain.QueryTypeTimeline, "chunk-b", "chunk-a"),
		record(domain.RatingBad, domain.QueryTypeTimeline, "chunk-b"),
		record(domain.RatingBad, domain.QueryTypePricing, "chunk-c"),
		record(domain.RatingGood, domain.QueryTypePricing, "chunk-d"), // good citations don't count
	}
	problems := ProblemChunks(records)
	require.Len(t, problems, 3)

	assert.Equal(t, "chunk-b", problems[0].ChunkID)
	assert.Equal(t, 2, problems[0].BadCount)
	// Equal counts break ties by ascending chunk ID.
	assert.Equal(t, "chunk-a", problems[1].ChunkID)
	assert.Equal(t, "chunk-c", problems[2].ChunkID)
}

func TestProblemChunksStableUnderPermutation(t *testing.T) {
	var records []domain.FeedbackRecord
	for i := 0; i < 20; i++ {
		records = append(records, record(domain.RatingBad, domain.QueryTypeTimeline, fmt.Sprintf("chunk-%d", i%4)))
	}

	baseline := ProblemChunks(records)

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 5; trial++ {
		shuffled := make([]domain.FeedbackRecord, len(records))
		copy(shuffled, records)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		got := ProblemChunks(shuffled)
		require.Len(t, got, len(baseline))
		for i := range baseline {
			assert.Equal(t, baseline[i].ChunkID, got[i].ChunkID)
			assert.Equal(t, baseline[i].BadCount, got[i].BadCount)
		}
	}
}

func TestProblemChunksSampleBound(t *testing.T) {
	var records []domain.FeedbackRecord
	for i := 0; i < 6; i++ {
		r := record(domain.RatingBad, domain.QueryTypeTimeline, "chunk-x")
		r.Question = fmt.Sprintf("question-%d", i)
		r.Reason = fmt.Sprintf("reason-%d", i)
		records = append(records, r)
	}
	problems := ProblemChunks(records)
	require.Len(t, problems, 1)
	assert.Equal(t, 6, problems[0].BadCount)
	assert.Equal(t, []string{"question-3", "question-4", "question-5"}, problems[0].Questions)
	assert.Equal(t, []string{"reason-3", "reason-4", "reason-5"}, problems[0].Reasons)
}

func TestProblemChunksDuplicateCitationsWithinRecord(t *testing.T) {
	records := []domain.FeedbackRecord{
		record(domain.RatingBad, domain.QueryTypeTimeline, "chunk-a", "chunk-a", "chunk-a"),
	}
	problems := ProblemChunks(records)
	require.Len(t, problems, 1)
	assert.Equal(t, 1, problems[0].BadCount)
}
