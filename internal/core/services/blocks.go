package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
	"github.com/clearbid-labs/propqa-cli/internal/core/ports/driven"
	"github.com/clearbid-labs/propqa-cli/internal/core/ports/driving"
	"github.com/clearbid-labs/propqa-cli/internal/logger"
)

// Ensure BlockService implements the interface.
var _ driving.BlockService = (*BlockService)(nil)

// DefaultBlockListLimit caps block listings when the caller passes no
// limit.
const DefaultBlockListLimit = 20

// BlockService manages user-curated reusable blocks.
type BlockService struct {
	embedder driven.EmbeddingService
	index    driven.IndexStore
}

// NewBlockService creates a new block service.
func NewBlockService(embedder driven.EmbeddingService, index driven.IndexStore) *BlockService {
	return &BlockService{embedder: embedder, index: index}
}

// Create embeds the content and stores a new block.
func (s *BlockService) Create(ctx context.Context, title, content, author, notes string, tags []string) (*domain.Block, error) {
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("title and content are required: %w", domain.ErrInvalidInput)
	}

	embedding, err := s.embedder.Embed(ctx, content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, err)
	}

	now := time.Now()
	block := domain.Block{
		ID:        uuid.New().String(),
		Title:     title,
		Content:   content,
		Embedding: embedding,
		Tags:      tags,
		Author:    author,
		Notes:     notes,
		CreatedAt: now,
	}
	if err := s.index.SaveBlock(ctx, block); err != nil {
		return nil, fmt.Errorf("save block: %w", err)
	}
	logger.Info("Saved block %s (%s)", block.ID, block.Title)
	return &block, nil
}

// List returns blocks matching the filter in the requested order.
func (s *BlockService) List(ctx context.Context, filter domain.BlockFilter, sort domain.BlockSort, limit int) ([]domain.Block, error) {
	if limit <= 0 {
		limit = DefaultBlockListLimit
	}
	switch sort {
	case domain.BlockSortRecent, domain.BlockSortPopular, domain.BlockSortLastUsed:
	case "":
		sort = domain.BlockSortRecent
	default:
		return nil, fmt.Errorf("unknown sort %q: %w", sort, domain.ErrInvalidInput)
	}
	return s.index.ListBlocks(ctx, filter, sort, limit)
}

// Use bumps the usage count of each block. Bumps for distinct ids are
// independent, so they run concurrently; each outcome is reported on
// its own and the batch is never collapsed to all-or-nothing.
func (s *BlockService) Use(ctx context.Context, blockIDs []string) *driving.UseResult {
	result := &driving.UseResult{Errors: make(map[string]error)}

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, id := range blockIDs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.index.BumpUsage(ctx, id)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				result.Failed++
				result.Errors[id] = err
				return
			}
			result.Succeeded++
		}()
	}
	wg.Wait()
	return result
}
