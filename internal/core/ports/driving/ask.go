package driving

import (
	"context"

	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
)

// AnswerService drafts grounded answers from past proposals.
type AnswerService interface {
	// Ask embeds the question, retrieves the most similar chunks, and
	// synthesizes an answer citing them. When retrieval is empty it
	// returns the fixed no-match answer and never calls the completion
	// service.
	Ask(ctx context.Context, question string) (*domain.Answer, error)
}
