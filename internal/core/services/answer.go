package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
	"github.com/clearbid-labs/propqa-cli/internal/core/ports/driven"
	"github.com/clearbid-labs/propqa-cli/internal/core/ports/driving"
	"github.com/clearbid-labs/propqa-cli/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 5

const answerSystemPrompt = "You are an assistant that drafts answers to questions about past " +
	"business proposals. Answer using only the provided proposal excerpts. " +
	"Cite the source proposals you drew from by client and filename. " +
	"If the excerpts do not contain the answer, say so plainly; never invent details."

// AnswerService drafts grounded answers: embed the question, retrieve
// similar chunks, synthesize from them. The three external calls are
// strictly sequential since each depends on the previous result.
type AnswerService struct {
	embedder  driven.EmbeddingService
	index     driven.IndexStore
	completer driven.CompletionService
	topK      int
}

// NewAnswerService creates a new answer service. A topK of zero or
// less falls back to DefaultTopK.
func NewAnswerService(
	embedder driven.EmbeddingService,
	index driven.IndexStore,
	completer driven.CompletionService,
	topK int,
) *AnswerService {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &AnswerService{
		embedder:  embedder,
		index:     index,
		completer: completer,
		topK:      topK,
	}
}

// Ask answers a question from past proposals.
//
// When retrieval yields no candidates the fixed no-match answer is
// returned with an empty source list and the completion service is
// never invoked: skipping synthesis there is a correctness invariant
// (an answer must not pretend to be grounded), not just a cost guard.
func (s *AnswerService) Ask(ctx context.Context, question string) (*domain.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("empty question: %w", domain.ErrInvalidInput)
	}

	logger.Section("Answer Drafting")
	queryType := domain.ClassifyQuestion(question)
	logger.Debug("Question classified as %q", queryType)

	embedding, err := s.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, err)
	}
	logger.Debug("Query embedding: %d dimensions", len(embedding))

	retrieved, err := s.index.Query(ctx, embedding, s.topK)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRetrievalUnavailable, err)
	}
	logger.Info("Retrieved %d candidate chunks", len(retrieved))

	if len(retrieved) == 0 {
		return &domain.Answer{
			Text:      domain.NoMatchAnswer,
			Sources:   []domain.SourceRef{},
			QueryType: queryType,
		}, nil
	}

	text, err := s.completer.Complete(ctx, buildPrompt(question, retrieved))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSynthesisUnavailable, err)
	}

	sources := make([]domain.SourceRef, len(retrieved))
	for i, r := range retrieved {
		sources[i] = domain.SourceRef{
			ChunkID:  r.Chunk.ID,
			Client:   r.Chunk.Client,
			Filename: r.Chunk.Filename,
			Content:  r.Chunk.Content,
		}
	}

	return &domain.Answer{
		Text:      strings.TrimSpace(text),
		Sources:   sources,
		QueryType: queryType,
	}, nil
}

// buildPrompt assembles the grounded prompt: system instruction plus a
// user message carrying the excerpts in retrieval order and the
// question.
func buildPrompt(question string, retrieved []domain.RetrievedChunk) []driven.Message {
	var b strings.Builder
	b.WriteString("Excerpts from past proposals:\n\n")
	for i, r := range retrieved {
		fmt.Fprintf(&b, "[%d] %s / %s", i+1, r.Chunk.Client, r.Chunk.Filename)
		if r.Chunk.Section != domain.SectionNone {
			fmt.Fprintf(&b, " (%s section)", r.Chunk.Section)
		}
		b.WriteString("\n")
		b.WriteString(r.Chunk.Content)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Question: %s\n", question)

	return []driven.Message{
		{Role: driven.RoleSystem, Content: answerSystemPrompt},
		{Role: driven.RoleUser, Content: b.String()},
	}
}
