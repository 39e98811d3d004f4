package domain

import "strings"

// QueryType is a closed classifier label for questions. Labels arriving
// from outside the known set collapse into QueryTypeUnknown rather than
// growing the set ad hoc.
type QueryType string

// Known query types.
const (
	QueryTypePricing    QueryType = "pricing"
	QueryTypeTimeline   QueryType = "timeline"
	QueryTypeApproach   QueryType = "approach"
	QueryTypeTechnical  QueryType = "technical"
	QueryTypeExperience QueryType = "experience"
	QueryTypeUnknown    QueryType = "unknown"
)

// ParseQueryType maps a free-form label onto the closed set.
// Empty or unrecognised labels become QueryTypeUnknown.
func ParseQueryType(label string) QueryType {
	switch QueryType(strings.ToLower(strings.TrimSpace(label))) {
	case QueryTypePricing:
		return QueryTypePricing
	case QueryTypeTimeline:
		return QueryTypeTimeline
	case QueryTypeApproach:
		return QueryTypeApproach
	case QueryTypeTechnical:
		return QueryTypeTechnical
	case QueryTypeExperience:
		return QueryTypeExperience
	default:
		return QueryTypeUnknown
	}
}

// querySignals maps keywords to the query type they indicate. First
// match in iteration order wins, so the table is ordered.
var querySignals = []struct {
	qt    QueryType
	words []string
}{
	{QueryTypePricing, []string{"price", "pricing", "cost", "budget", "rate", "fee"}},
	{QueryTypeTimeline, []string{"timeline", "schedule", "deadline", "milestone", "how long", "when"}},
	{QueryTypeApproach, []string{"approach", "methodology", "process", "how do", "how did", "strategy"}},
	{QueryTypeTechnical, []string{"stack", "technology", "architecture", "integration", "platform", "api"}},
	{QueryTypeExperience, []string{"experience", "similar", "case study", "reference", "track record"}},
}

// ClassifyQuestion assigns a query type from keyword signals in the
// question text. Questions matching no signal are QueryTypeUnknown.
func ClassifyQuestion(question string) QueryType {
	q := strings.ToLower(question)
	for _, sig := range querySignals {
		for _, w := range sig.words {
			if strings.Contains(q, w) {
				return sig.qt
			}
		}
	}
	return QueryTypeUnknown
}
