// Package sectionlabel annotates chunks with the proposal section they
// open. It runs after the chunker in the pipeline.
package sectionlabel

import (
	"context"
	"strings"

	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
	"github.com/clearbid-labs/propqa-cli/internal/sections"
)

// prefixLen is how much of a section's opening text a chunk must carry
// to be labelled with it.
const prefixLen = 100

// Processor labels chunks with section names.
// It implements the PostProcessor interface.
type Processor struct{}

// New creates a section labelling processor.
func New() *Processor {
	return &Processor{}
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "sectionlabel"
}

// Process assigns at most one section label per chunk: a chunk is
// labelled with a section when it contains the section's opening text
// (up to prefixLen bytes). Spans are tried in source order, so when a
// chunk overlaps two sections' openings the section whose marker occurs
// earlier wins.
func (p *Processor) Process(_ context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error) {
	spans := sections.Extract(doc.Content)
	if len(spans) == 0 {
		return chunks, nil
	}

	prefixes := make([]string, len(spans))
	for i, sp := range spans {
		end := sp.Start + prefixLen
		if end > sp.End {
			end = sp.End
		}
		prefixes[i] = doc.Content[sp.Start:end]
	}

	for i := range chunks {
		for j, pfx := range prefixes {
			if pfx == "" {
				continue
			}
			if strings.Contains(chunks[i].Content, pfx) {
				chunks[i].Section = spans[j].Name
				break
			}
		}
	}
	return chunks, nil
}
