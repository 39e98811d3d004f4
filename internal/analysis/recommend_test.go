package analysis

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
)

func hasSeverity(recs []Recommendation, severity string) bool {
	for _, r := range recs {
		if r.Severity == severity {
			return true
		}
	}
	return false
}

func TestRecommendCriticalWhenBadOutweighsGood(t *testing.T) {
	var records []domain.FeedbackRecord
	for i := 0; i < 8; i++ {
		records = append(records, record(domain.RatingBad, domain.QueryTypeTimeline))
	}
	for i := 0; i < 2; i++ {
		records = append(records, record(domain.RatingGood, domain.QueryTypeTimeline))
	}

	recs := Recommend(Summarize(records), ByQueryType(records), ProblemChunks(records))
	require.True(t, hasSeverity(recs, SeverityCritical))
	assert.Contains(t, recs[0].Message, "bad (8)")
}

func TestRecommendTargetsUnderperformingQueryType(t *testing.T) {
	var records []domain.FeedbackRecord
	records = append(records, record(domain.RatingGood, domain.QueryTypePricing))
	for i := 0; i < 4; i++ {
		records = append(records, record(domain.RatingBad, domain.QueryTypePricing))
	}
	// Plenty of good answers elsewhere so the global rule stays quiet.
	for i := 0; i < 10; i++ {
		records = append(records, record(domain.RatingGood, domain.QueryTypeTimeline))
	}

	recs := Recommend(Summarize(records), ByQueryType(records), ProblemChunks(records))
	assert.False(t, hasSeverity(recs, SeverityCritical))

	var found bool
	for _, r := range recs {
		if strings.Contains(r.Message, `"pricing"`) {
			found = true
			assert.Equal(t, SeverityWarning, r.Severity)
			assert.Contains(t, r.Message, "20%")
		}
	}
	assert.True(t, found, "pricing recommendation missing")
}

func TestRecommendSkipsSmallSampleTypes(t *testing.T) {
	// 2 records is below the minimum sample threshold.
	records := []domain.FeedbackRecord{
		record(domain.RatingBad, domain.QueryTypeTechnical),
		record(domain.RatingBad, domain.QueryTypeTechnical),
	}
	recs := Recommend(Summary{Good: 5, Bad: 2, Total: 7}, ByQueryType(records), nil)
	for _, r := range recs {
		assert.NotContains(t, r.Message, "technical")
	}
}

func TestRecommendProblemChunksCapped(t *testing.T) {
	var records []domain.FeedbackRecord
	for c := 0; c < 8; c++ {
		for i := 0; i < 2; i++ {
			records = append(records, record(domain.RatingBad, domain.QueryTypeTimeline, fmt.Sprintf("chunk-%d", c)))
		}
	}
	recs := Recommend(Summary{}, nil, ProblemChunks(records))

	chunkRecs := 0
	for _, r := range recs {
		if strings.Contains(r.Message, "rewrite, split, or remove") {
			chunkRecs++
		}
	}
	assert.Equal(t, maxChunkRecommendations, chunkRecs)
}

func TestRecommendEmptyFeedbackYieldsGeneralOnly(t *testing.T) {
	recs := Recommend(Summarize(nil), ByQueryType(nil), ProblemChunks(nil))
	require.Len(t, recs, len(generalRecommendations))
	for _, r := range recs {
		assert.Equal(t, SeverityInfo, r.Severity)
	}
}
