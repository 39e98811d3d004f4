package postprocessors

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
	"github.com/clearbid-labs/propqa-cli/internal/postprocessors/chunker"
	"github.com/clearbid-labs/propqa-cli/internal/postprocessors/sectionlabel"
)

// buildProposal produces a ~3000 byte proposal with a timeline section
// roughly midway through.
func buildProposal(t *testing.T) string {
	t.Helper()
	var b strings.Builder
	b.WriteString(strings.Repeat("The client operates a national retail chain with complex stock flows. ", 20))
	b.WriteString("\n## Timeline\nPhase one covers discovery and runs for six weeks. ")
	b.WriteString(strings.Repeat("Each following phase delivers a working increment every month. ", 10))
	b.WriteString("\n")
	b.WriteString(strings.Repeat("Appendix material describing the team and prior engagements follows here. ", 12))
	s := b.String()
	require.GreaterOrEqual(t, len(s), 2900)
	return s
}

func TestPipelineChunksAndLabelsTimelineSection(t *testing.T) {
	content := buildProposal(t)
	doc := &domain.Document{ID: "doc-tl", Filename: "retail.txt", Client: "NorthMart", Content: content}

	pipe := NewPipeline(
		chunker.New(chunker.WithChunkSize(800), chunker.WithOverlap(100)),
		sectionlabel.New(),
	)

	chunks, err := pipe.Process(context.Background(), doc)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	// Every chunk respects the size bound.
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c.Content), 800)
	}

	// The chunk containing the timeline opening carries the label.
	sectionStart := strings.Index(content, "## Timeline") + len("## ")
	var labelled []domain.Chunk
	for _, c := range chunks {
		if c.Section == domain.SectionTimeline {
			labelled = append(labelled, c)
		}
	}
	require.NotEmpty(t, labelled, "no chunk carries the timeline label")
	for _, c := range labelled {
		assert.LessOrEqual(t, c.StartOffset, sectionStart)
		assert.Greater(t, c.StartOffset+len(c.Content), sectionStart)
	}

	// Accounting for overlap, the chunks reconstruct the full input.
	covered := 0
	total := 0
	for _, c := range chunks {
		end := c.StartOffset + len(c.Content)
		if end > covered {
			total += end - max(covered, c.StartOffset)
			covered = end
		}
	}
	assert.Equal(t, len(content), total)
}

func TestPipelineNilDocument(t *testing.T) {
	pipe := NewPipeline(chunker.New())
	_, err := pipe.Process(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPipelineNoSectionsLeavesChunksUnlabelled(t *testing.T) {
	doc := &domain.Document{ID: "d", Filename: "f.txt", Content: strings.Repeat("plain prose without structure ", 40)}
	pipe := NewPipeline(chunker.New(), sectionlabel.New())

	chunks, err := pipe.Process(context.Background(), doc)
	require.NoError(t, err)
	for _, c := range chunks {
		assert.Equal(t, domain.SectionNone, c.Section)
	}
}
