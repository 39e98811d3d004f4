// Package chunker provides a bounded-size text chunking processor with
// overlapping boundaries.
package chunker

import (
	"context"
	"fmt"

	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
)

// DefaultChunkSize is the default maximum number of bytes per chunk.
const DefaultChunkSize = 800

// DefaultOverlap is the default number of bytes adjacent chunks share.
// Overlap is not optional: a fact split across a boundary with no
// shared context is effectively unretrievable.
const DefaultOverlap = 100

// MinChunkSize is the smallest accepted chunk size. Sizes below this
// produce near-empty chunks that pollute retrieval.
const MinChunkSize = 50

// Processor splits document content into bounded-size chunks.
// It implements the PostProcessor interface. Output is deterministic:
// chunk IDs derive from the document ID and position, never from
// randomness.
type Processor struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the maximum chunk size in bytes.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size >= MinChunkSize {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between adjacent chunks in bytes.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// New creates a chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}
	for _, opt := range opts {
		opt(p)
	}

	// Overlap must leave room for new content in every chunk.
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}
	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the document content into chunks covering the entire
// input with no gaps. Each chunk is at most chunkSize bytes and shares
// an overlap-sized tail with its successor. Splits prefer whitespace
// boundaries; a mid-word split happens only when the size budget holds
// no whitespace at all.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	content := doc.Content
	if content == "" {
		return nil, nil
	}

	estimated := len(content)/(p.chunkSize-p.overlap) + 1
	chunks := make([]domain.Chunk, 0, estimated)

	position := 0
	start := 0
	for start < len(content) {
		end := start + p.chunkSize
		if end >= len(content) {
			end = len(content)
		} else {
			end = snapToBoundary(content, start, end)
		}

		chunks = append(chunks, domain.Chunk{
			ID:          fmt.Sprintf("%s:%d", doc.ID, position),
			DocumentID:  doc.ID,
			Content:     content[start:end],
			Position:    position,
			StartOffset: start,
			Filename:    doc.Filename,
			Client:      doc.Client,
			Tags:        doc.Tags,
		})
		position++

		if end == len(content) {
			break
		}
		next := end - p.overlap
		if next <= start {
			// Degenerate parameters; advance without overlap rather
			// than looping forever.
			next = end
		}
		start = next
	}

	return chunks, nil
}

// snapToBoundary moves end back to just after the last whitespace in
// (start, end) so splits land between words or sentences. If the
// window holds no whitespace the hard cut stands.
func snapToBoundary(content string, start, end int) int {
	for i := end - 1; i > start; i-- {
		switch content[i] {
		case ' ', '\n', '\t', '\r':
			return i + 1
		}
	}
	return end
}
