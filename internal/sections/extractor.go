// Package sections locates known proposal zones in raw text using
// ordered marker heuristics. Extraction is pure: no state, no external
// calls, identical output for identical input.
package sections

import (
	"sort"
	"strings"

	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
)

// Span is a located section: the half-open byte range [Start, End) of
// the section's text within the source.
type Span struct {
	Name  domain.Section
	Start int
	End   int
}

// markers lists the phrases that open each known section. Order matters
// twice: phrases earlier in a section's list are preferred, and the
// table order breaks ties when two sections' markers start at the same
// offset.
var markers = []struct {
	name    domain.Section
	phrases []string
}{
	{domain.SectionUnderstanding, []string{
		"our understanding",
		"understanding of your",
		"understanding the requirement",
	}},
	{domain.SectionProblem, []string{
		"problem statement",
		"the problem",
		"current challenges",
	}},
	{domain.SectionApproach, []string{
		"our approach",
		"proposed approach",
		"methodology",
		"proposed solution",
	}},
	{domain.SectionTimeline, []string{
		"timeline",
		"project schedule",
		"delivery schedule",
		"milestones",
	}},
}

// Extract returns the spans of all sections found in text, ordered by
// source position. A section with no marker is simply absent. Each
// section appears at most once: the earliest marker wins. Every span
// runs from its marker to the start of the next located section (or
// end of text).
func Extract(text string) []Span {
	lower := strings.ToLower(text)

	type hit struct {
		name  domain.Section
		start int
		order int // position in the marker table, for same-offset ties
	}

	var hits []hit
	for i, m := range markers {
		best := -1
		for _, phrase := range m.phrases {
			if idx := markerIndex(lower, phrase); idx >= 0 && (best < 0 || idx < best) {
				best = idx
			}
		}
		if best >= 0 {
			hits = append(hits, hit{name: m.name, start: best, order: i})
		}
	}
	if len(hits) == 0 {
		return nil
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].start != hits[j].start {
			return hits[i].start < hits[j].start
		}
		return hits[i].order < hits[j].order
	})

	spans := make([]Span, len(hits))
	for i, h := range hits {
		end := len(text)
		if i+1 < len(hits) {
			end = hits[i+1].start
		}
		spans[i] = Span{Name: h.name, Start: h.start, End: end}
	}
	return spans
}

// markerIndex finds the first occurrence of phrase that looks like a
// section opener: at the start of a line, allowing heading decoration
// before it. When no heading-like occurrence exists, the first plain
// occurrence is used so prose markers still count.
func markerIndex(lower, phrase string) int {
	first := -1
	from := 0
	for {
		idx := strings.Index(lower[from:], phrase)
		if idx < 0 {
			return first
		}
		idx += from
		if isHeadingLike(lower, idx) {
			return idx
		}
		if first < 0 {
			first = idx
		}
		from = idx + 1
	}
}

// isHeadingLike reports whether the marker at idx opens a line, allowing
// leading heading decoration such as "#", "3.", or whitespace.
func isHeadingLike(lower string, idx int) bool {
	lineStart := strings.LastIndexByte(lower[:idx], '\n') + 1
	prefix := lower[lineStart:idx]
	for _, r := range prefix {
		switch {
		case r == ' ' || r == '\t' || r == '#' || r == '.' || r == ')' || r == ':':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
