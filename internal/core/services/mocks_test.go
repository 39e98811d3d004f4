package services

import (
	"context"
	"sync"

	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
	"github.com/clearbid-labs/propqa-cli/internal/core/ports/driven"
)

// --- Mock implementations shared across the service tests ---

// mockEmbeddingService implements driven.EmbeddingService.
type mockEmbeddingService struct {
	mu        sync.Mutex
	embedding []float32
	embedErr  error
	calls     int
}

func (m *mockEmbeddingService) Embed(_ context.Context, _ string) ([]float32, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	if m.embedding != nil {
		return m.embedding, nil
	}
	return []float32{0.1, 0.2, 0.3}, nil
}

func (m *mockEmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	result := make([][]float32, len(texts))
	for i := range texts {
		v, err := m.Embed(ctx, texts[i])
		if err != nil {
			return nil, err
		}
		result[i] = v
	}
	return result, nil
}

func (m *mockEmbeddingService) Dimensions() int   { return 3 }
func (m *mockEmbeddingService) ModelName() string { return "mock-embed" }
func (m *mockEmbeddingService) Close() error      { return nil }

// mockCompletionService implements driven.CompletionService and counts
// calls so tests can assert it was never invoked.
type mockCompletionService struct {
	mu       sync.Mutex
	result   string
	err      error
	calls    int
	messages []driven.Message
}

func (m *mockCompletionService) Complete(_ context.Context, messages []driven.Message) (string, error) {
	m.mu.Lock()
	m.calls++
	m.messages = messages
	m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	if m.result != "" {
		return m.result, nil
	}
	return "a drafted answer", nil
}

func (m *mockCompletionService) ModelName() string { return "mock-llm" }
func (m *mockCompletionService) Close() error      { return nil }

// mockIndexStore implements driven.IndexStore.
type mockIndexStore struct {
	mu sync.Mutex

	hits     []domain.RetrievedChunk
	queryErr error

	inserted    []domain.Chunk
	insertErr   error
	failInserts map[string]error // chunk ID -> error

	deletedFilenames []string
	deleteErr        error

	blocks   []domain.Block
	saveErr  error
	listErr  error
	bumpErrs map[string]error // block ID -> error
	bumps    map[string]int
}

func (m *mockIndexStore) InsertChunk(_ context.Context, chunk domain.Chunk) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.failInserts[chunk.ID]; ok {
		return err
	}
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, chunk)
	return nil
}

func (m *mockIndexStore) DeleteDocumentChunks(_ context.Context, filename string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedFilenames = append(m.deletedFilenames, filename)
	return nil
}

func (m *mockIndexStore) Query(_ context.Context, _ []float32, k int) ([]domain.RetrievedChunk, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	if k > len(m.hits) {
		return m.hits, nil
	}
	return m.hits[:k], nil
}

func (m *mockIndexStore) SaveBlock(_ context.Context, block domain.Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.blocks = append(m.blocks, block)
	return nil
}

func (m *mockIndexStore) GetBlock(_ context.Context, id string) (*domain.Block, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.blocks {
		if m.blocks[i].ID == id {
			b := m.blocks[i]
			return &b, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockIndexStore) ListBlocks(_ context.Context, _ domain.BlockFilter, _ domain.BlockSort, limit int) ([]domain.Block, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	if limit > len(m.blocks) {
		return m.blocks, nil
	}
	return m.blocks[:limit], nil
}

func (m *mockIndexStore) BumpUsage(_ context.Context, blockID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err, ok := m.bumpErrs[blockID]; ok {
		return err
	}
	if m.bumps == nil {
		m.bumps = make(map[string]int)
	}
	m.bumps[blockID]++
	return nil
}

func (m *mockIndexStore) Close() error { return nil }

// mockFeedbackStore implements driven.FeedbackStore.
type mockFeedbackStore struct {
	records   []domain.FeedbackRecord
	malformed int
	appendErr error
	listErr   error
}

func (m *mockFeedbackStore) Append(_ context.Context, record domain.FeedbackRecord) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	m.records = append(m.records, record)
	return nil
}

func (m *mockFeedbackStore) List(_ context.Context) ([]domain.FeedbackRecord, int, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	return m.records, m.malformed, nil
}

func (m *mockFeedbackStore) Close() error { return nil }

// mockNormaliser implements driven.Normaliser.
type mockNormaliser struct {
	exts    []string
	content string
	err     error
}

func (m *mockNormaliser) Extensions() []string { return m.exts }

func (m *mockNormaliser) Normalise(_ context.Context, _ string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.content, nil
}
