package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/clearbid-labs/propqa-cli/internal/adapters/driven/storage/memory"
	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
	"github.com/clearbid-labs/propqa-cli/internal/core/ports/driven"
	"github.com/clearbid-labs/propqa-cli/internal/core/services"
	"github.com/clearbid-labs/propqa-cli/internal/normalisers/plaintext"
	"github.com/clearbid-labs/propqa-cli/internal/postprocessors"
	"github.com/clearbid-labs/propqa-cli/internal/postprocessors/chunker"
	"github.com/clearbid-labs/propqa-cli/internal/postprocessors/sectionlabel"
)

// fakeEmbedder returns a constant vector without any network calls.
type fakeEmbedder struct{}

func (fakeEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	return []float32{0.1, 0.2, 0.3}, nil
}

func (f fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))
	for i := range texts {
		result[i], _ = f.Embed(ctx, texts[i])
	}
	return result, nil
}

func (fakeEmbedder) Dimensions() int   { return 3 }
func (fakeEmbedder) ModelName() string { return "fake-embed" }
func (fakeEmbedder) Close() error      { return nil }

// fakeCompleter answers with a fixed string and counts calls.
type fakeCompleter struct {
	calls int
}

func (f *fakeCompleter) Complete(_ context.Context, _ []driven.Message) (string, error) {
	f.calls++
	return "a drafted answer", nil
}

func (*fakeCompleter) ModelName() string { return "fake-llm" }
func (*fakeCompleter) Close() error      { return nil }

// testHarness holds the stores behind the injected services so tests
// can seed and inspect them.
type testHarness struct {
	index     *memory.IndexStore
	feedback  *memory.FeedbackStore
	completer *fakeCompleter
}

// setupTestServices wires every CLI service against in-memory stores
// and restores the previous wiring when the test finishes.
func setupTestServices(t *testing.T) *testHarness {
	t.Helper()
	h := &testHarness{
		index:     memory.NewIndexStore(),
		feedback:  memory.NewFeedbackStore(),
		completer: &fakeCompleter{},
	}

	pipeline := postprocessors.NewPipeline(chunker.New(), sectionlabel.New())
	normalisers := []driven.Normaliser{plaintext.New()}

	origAnswer, origIngest := answerService, ingestService
	origBlock, origFeedback := blockService, feedbackService

	answerService = services.NewAnswerService(fakeEmbedder{}, h.index, h.completer, 5)
	ingestService = services.NewIngestService(normalisers, pipeline, fakeEmbedder{}, h.index, nil, 2)
	blockService = services.NewBlockService(fakeEmbedder{}, h.index)
	feedbackService = services.NewFeedbackService(h.feedback)

	t.Cleanup(func() {
		answerService, ingestService = origAnswer, origIngest
		blockService, feedbackService = origBlock, origFeedback
	})
	return h
}

func (h *testHarness) seedFeedback(t *testing.T, records []domain.FeedbackRecord) {
	t.Helper()
	ctx := context.Background()
	for _, r := range records {
		require.NoError(t, h.feedback.Append(ctx, r))
	}
}
