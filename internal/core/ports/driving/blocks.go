package driving

import (
	"context"

	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
)

// BlockService manages user-curated reusable blocks.
type BlockService interface {
	// Create embeds the content and stores a new block.
	Create(ctx context.Context, title, content, author, notes string, tags []string) (*domain.Block, error)

	// List returns blocks matching the filter in the requested order.
	List(ctx context.Context, filter domain.BlockFilter, sort domain.BlockSort, limit int) ([]domain.Block, error)

	// Use bumps the usage count of each block concurrently and reports
	// per-block outcomes; the batch is never all-or-nothing.
	Use(ctx context.Context, blockIDs []string) *UseResult
}

// UseResult reports per-block outcomes of a usage-bump batch.
type UseResult struct {
	Succeeded int
	Failed    int
	Errors    map[string]error
}
