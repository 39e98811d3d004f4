// Package analysis turns accumulated answer feedback into diagnostics:
// global quality stats, per-query-type success rates, and a ranked
// signal of which chunks are harming answers. Everything here is a pure
// function of the record set; nothing touches a store.
package analysis

import (
	"sort"

	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
)

// maxSamples bounds the question/reason samples kept per chunk and the
// recent reasons kept per query type. Oldest samples are evicted first.
const maxSamples = 3

// Summary is the global good/bad tally.
type Summary struct {
	Total   int
	Good    int
	Bad     int
	GoodPct float64
	BadPct  float64
}

// Summarize counts ratings across all records. Percentages are zero
// when the record set is empty; there is never a division by zero.
func Summarize(records []domain.FeedbackRecord) Summary {
	var s Summary
	for _, r := range records {
		switch r.Rating {
		case domain.RatingGood:
			s.Good++
		case domain.RatingBad:
			s.Bad++
		default:
			continue
		}
		s.Total++
	}
	if s.Total > 0 {
		s.GoodPct = 100 * float64(s.Good) / float64(s.Total)
		s.BadPct = 100 * float64(s.Bad) / float64(s.Total)
	}
	return s
}

// QueryTypeStats is the per-query-type tally.
type QueryTypeStats struct {
	Type domain.QueryType
	Good int
	Bad  int

	// SuccessRate is good/(good+bad); zero when the type has no records.
	SuccessRate float64

	// RecentReasons holds up to maxSamples of the latest bad-rating
	// reasons, oldest evicted first.
	RecentReasons []string
}

// Total returns the number of rated records for the type.
func (s QueryTypeStats) Total() int {
	return s.Good + s.Bad
}

// ByQueryType tallies ratings per query type. Records without a known
// query type land in the explicit unknown bucket rather than being
// dropped. Results are ordered by type name for deterministic output.
func ByQueryType(records []domain.FeedbackRecord) []QueryTypeStats {
	byType := make(map[domain.QueryType]*QueryTypeStats)
	for _, r := range records {
		if !r.Rating.Valid() {
			continue
		}
		qt := r.QueryType
		if qt == "" {
			qt = domain.QueryTypeUnknown
		}
		st, ok := byType[qt]
		if !ok {
			st = &QueryTypeStats{Type: qt}
			byType[qt] = st
		}
		if r.Rating == domain.RatingGood {
			st.Good++
		} else {
			st.Bad++
			if r.Reason != "" {
				st.RecentReasons = appendBounded(st.RecentReasons, r.Reason)
			}
		}
	}

	stats := make([]QueryTypeStats, 0, len(byType))
	for _, st := range byType {
		if total := st.Total(); total > 0 {
			st.SuccessRate = float64(st.Good) / float64(total)
		}
		stats = append(stats, *st)
	}
	sort.Slice(stats, func(i, j int) bool {
		return stats[i].Type < stats[j].Type
	})
	return stats
}

// ChunkProblem is one chunk's association with bad answers.
type ChunkProblem struct {
	ChunkID string

	// BadCount is how many bad-rated answers cited the chunk.
	BadCount int

	// Questions and Reasons are bounded samples from the associated
	// records, oldest evicted first.
	Questions []string
	Reasons   []string
}

// ProblemChunks counts, for every chunk cited by a bad-rated record,
// how often it was implicated, keeping small question/reason samples.
// The ranking is a pure function of the citation counts: descending
// count, ascending chunk ID on ties, so it is stable under any
// permutation of the input records.
func ProblemChunks(records []domain.FeedbackRecord) []ChunkProblem {
	byChunk := make(map[string]*ChunkProblem)
	for _, r := range records {
		if r.Rating != domain.RatingBad {
			continue
		}
		seen := make(map[string]bool, len(r.ChunkIDs))
		for _, id := range r.ChunkIDs {
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			cp, ok := byChunk[id]
			if !ok {
				cp = &ChunkProblem{ChunkID: id}
				byChunk[id] = cp
			}
			cp.BadCount++
			if r.Question != "" {
				cp.Questions = appendBounded(cp.Questions, r.Question)
			}
			if r.Reason != "" {
				cp.Reasons = appendBounded(cp.Reasons, r.Reason)
			}
		}
	}

	problems := make([]ChunkProblem, 0, len(byChunk))
	for _, cp := range byChunk {
		problems = append(problems, *cp)
	}
	sort.Slice(problems, func(i, j int) bool {
		if problems[i].BadCount != problems[j].BadCount {
			return problems[i].BadCount > problems[j].BadCount
		}
		return problems[i].ChunkID < problems[j].ChunkID
	})
	return problems
}

// appendBounded appends keeping at most maxSamples entries, evicting
// the oldest first.
func appendBounded(samples []string, s string) []string {
	samples = append(samples, s)
	if len(samples) > maxSamples {
		samples = samples[len(samples)-maxSamples:]
	}
	return samples
}
