package analysis

import "fmt"

// Rule thresholds for targeted recommendations.
const (
	// minTypeSamples is the smallest per-type total worth judging.
	minTypeSamples = 3

	// lowSuccessRate flags a query type as underperforming.
	lowSuccessRate = 0.5

	// minChunkProblems flags a chunk for rewriting.
	minChunkProblems = 2

	// maxChunkRecommendations caps the per-chunk recommendations.
	maxChunkRecommendations = 5
)

// Severity levels for recommendations.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
	SeverityInfo     = "info"
)

// Recommendation is one actionable diagnostic.
type Recommendation struct {
	Severity string
	Message  string
}

// generalRecommendations are appended to every report regardless of the
// feedback set.
var generalRecommendations = []Recommendation{
	{SeverityInfo, "Review feedback weekly and re-ingest proposals whose chunks keep appearing in bad answers."},
	{SeverityInfo, "Alert when the global bad percentage exceeds 40% over the trailing week."},
	{SeverityInfo, "Spot-check a sample of good-rated answers monthly; silent quality drift does not show up in counts."},
}

// Recommend evaluates fixed rules over the aggregated feedback and
// returns actionable diagnostics. The evaluation is deterministic and
// tolerates empty input: with no feedback only the general
// recommendations are returned.
func Recommend(sum Summary, types []QueryTypeStats, chunks []ChunkProblem) []Recommendation {
	var recs []Recommendation

	if sum.Bad > sum.Good {
		recs = append(recs, Recommendation{
			Severity: SeverityCritical,
			Message: fmt.Sprintf(
				"More answers are rated bad (%d) than good (%d); review retrieval quality before adding content.",
				sum.Bad, sum.Good),
		})
	}

	for _, st := range types {
		if st.Total() >= minTypeSamples && st.SuccessRate < lowSuccessRate {
			recs = append(recs, Recommendation{
				Severity: SeverityWarning,
				Message: fmt.Sprintf(
					"Query type %q underperforms: %.0f%% success over %d answers. Ingest proposals covering this topic.",
					st.Type, 100*st.SuccessRate, st.Total()),
			})
		}
	}

	count := 0
	for _, cp := range chunks {
		if cp.BadCount < minChunkProblems {
			break // chunks arrive ranked by descending count
		}
		if count == maxChunkRecommendations {
			break
		}
		recs = append(recs, Recommendation{
			Severity: SeverityWarning,
			Message: fmt.Sprintf(
				"Chunk %s was cited in %d bad answers; rewrite, split, or remove it.",
				cp.ChunkID, cp.BadCount),
		})
		count++
	}

	return append(recs, generalRecommendations...)
}
