package memory

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
	"github.com/clearbid-labs/propqa-cli/internal/core/ports/driven"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// IndexStore is an in-memory implementation of driven.IndexStore.
// Retrieval is brute-force cosine similarity over all stored chunks,
// which is fine for tests and small local corpora.
type IndexStore struct {
	mu     sync.RWMutex
	chunks []domain.Chunk
	blocks map[string]domain.Block
}

// NewIndexStore creates a new in-memory index store.
func NewIndexStore() *IndexStore {
	return &IndexStore{
		blocks: make(map[string]domain.Block),
	}
}

// InsertChunk stores a chunk with its embedding.
func (s *IndexStore) InsertChunk(_ context.Context, chunk domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chunks = append(s.chunks, chunk)
	return nil
}

// DeleteDocumentChunks removes all chunks derived from the named file.
func (s *IndexStore) DeleteDocumentChunks(_ context.Context, filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := s.chunks[:0]
	for _, c := range s.chunks {
		if c.Filename != filename {
			kept = append(kept, c)
		}
	}
	s.chunks = kept
	return nil
}

// Query returns up to k chunks by descending cosine similarity.
// Stable sort over the insertion-ordered slice keeps earlier chunks
// first on exact ties.
func (s *IndexStore) Query(_ context.Context, embedding []float32, k int) ([]domain.RetrievedChunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]domain.RetrievedChunk, 0, len(s.chunks))
	for _, c := range s.chunks {
		results = append(results, domain.RetrievedChunk{
			Chunk:      c,
			Similarity: cosineSimilarity(embedding, c.Embedding),
		})
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if k < len(results) {
		results = results[:k]
	}
	return results, nil
}

// SaveBlock stores or replaces a block.
func (s *IndexStore) SaveBlock(_ context.Context, block domain.Block) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.blocks[block.ID] = block
	return nil
}

// GetBlock retrieves a block by ID.
func (s *IndexStore) GetBlock(_ context.Context, id string) (*domain.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	block, ok := s.blocks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &block, nil
}

// ListBlocks returns blocks matching the filter, ordered per sort.
func (s *IndexStore) ListBlocks(_ context.Context, filter domain.BlockFilter, sortBy domain.BlockSort, limit int) ([]domain.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Block
	for _, b := range s.blocks {
		if matchesFilter(b, filter) {
			result = append(result, b)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		switch sortBy {
		case domain.BlockSortPopular:
			if a.UsageCount != b.UsageCount {
				return a.UsageCount > b.UsageCount
			}
		case domain.BlockSortLastUsed:
			if !a.LastUsedAt.Equal(b.LastUsedAt) {
				return a.LastUsedAt.After(b.LastUsedAt)
			}
		default:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		}
		return a.ID < b.ID
	})

	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

// BumpUsage increments a block's usage count under the store lock, so
// concurrent bumps for the same block never lose increments.
func (s *IndexStore) BumpUsage(_ context.Context, blockID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	block, ok := s.blocks[blockID]
	if !ok {
		return domain.ErrNotFound
	}
	block.UsageCount++
	block.LastUsedAt = time.Now()
	s.blocks[blockID] = block
	return nil
}

// Close releases resources.
func (s *IndexStore) Close() error {
	return nil
}

func matchesFilter(b domain.Block, filter domain.BlockFilter) bool {
	if filter.Author != "" && b.Author != filter.Author {
		return false
	}
	if len(filter.Tags) > 0 && !tagsOverlap(b.Tags, filter.Tags) {
		return false
	}
	if filter.Contains != "" {
		needle := strings.ToLower(filter.Contains)
		if !strings.Contains(strings.ToLower(b.Title), needle) &&
			!strings.Contains(strings.ToLower(b.Content), needle) {
			return false
		}
	}
	return true
}

func tagsOverlap(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
