package domain

import "time"

// Document represents an ingested proposal with its metadata.
// It is the canonical representation after normalisation and is
// immutable once ingested; re-ingesting the same filename supersedes
// the chunks derived from the earlier version.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Filename is the original file name, also the supersede key:
	// ingesting the same filename replaces earlier chunks.
	Filename string

	// Client is the client the proposal was written for.
	Client string

	// Date is the proposal date.
	Date time.Time

	// Tags are free-form labels attached at ingestion time.
	Tags []string

	// Content is the full text content after normalisation.
	Content string

	// CreatedAt is when the document was ingested.
	CreatedAt time.Time
}

// Section identifies a recognised zone of a proposal document.
type Section string

// Known proposal sections. SectionNone marks chunks that fall outside
// any recognised zone.
const (
	SectionUnderstanding Section = "understanding"
	SectionApproach      Section = "approach"
	SectionTimeline      Section = "timeline"
	SectionProblem       Section = "problem"
	SectionNone          Section = ""
)

// Chunk is the unit of retrieval: a bounded-size fragment of a
// document, auto-derived at ingestion time and never mutated.
// Document metadata is copied onto each chunk so retrieval results can
// be presented without a second lookup.
type Chunk struct {
	// ID is deterministic: "<documentID>:<position>".
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Position is the ordinal position within the document.
	Position int

	// StartOffset is the byte offset of Content within the source
	// document. Adjacent chunks overlap, so offsets are what relate a
	// chunk back to the exact source span.
	StartOffset int

	// Section is the zone label assigned after chunking, or SectionNone.
	Section Section

	// Embedding is the vector representation for semantic retrieval.
	Embedding []float32

	// Metadata copied from the parent document.
	Filename string
	Client   string
	Tags     []string
}

// RetrievedChunk pairs a chunk with its similarity to a query.
type RetrievedChunk struct {
	Chunk Chunk

	// Similarity is the cosine similarity to the query embedding.
	Similarity float64
}
