package domain

// NoMatchAnswer is returned when retrieval finds no candidates.
// Presenting a synthesized answer without retrieved grounding is never
// allowed, so this fixed sentinel short-circuits synthesis entirely.
const NoMatchAnswer = "No matching historical proposals were found for this question."

// SourceRef identifies a cited chunk in a way a reader can act on.
type SourceRef struct {
	// ChunkID is the cited chunk.
	ChunkID string `json:"chunk_id"`

	// Client is the client of the source proposal.
	Client string `json:"client"`

	// Filename is the source proposal file.
	Filename string `json:"filename"`

	// Content is the cited chunk text.
	Content string `json:"content"`
}

// Answer is the output of the answer orchestrator.
type Answer struct {
	// Text is the drafted answer, or NoMatchAnswer when retrieval was
	// empty.
	Text string `json:"text"`

	// Sources lists cited chunks in retrieval-ranking order. Empty when
	// Text is NoMatchAnswer.
	Sources []SourceRef `json:"sources"`

	// QueryType is the classified category of the question, kept so
	// feedback on this answer can be segmented.
	QueryType QueryType `json:"query_type"`
}

// Grounded reports whether the answer was synthesized from retrieved
// sources.
func (a Answer) Grounded() bool {
	return len(a.Sources) > 0
}
