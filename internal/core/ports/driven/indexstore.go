package driven

import (
	"context"

	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
)

// IndexStore is the narrow contract over the external vector-capable
// store. It holds chunks for nearest-neighbour retrieval and reusable
// blocks for metadata-filtered listing.
type IndexStore interface {
	// InsertChunk stores a chunk with its embedding and copied metadata.
	// A failed insert reports only that chunk; callers ingesting a batch
	// track per-chunk outcomes rather than aborting.
	InsertChunk(ctx context.Context, chunk domain.Chunk) error

	// DeleteDocumentChunks removes all chunks derived from the named
	// file, so re-ingestion supersedes rather than duplicates.
	DeleteDocumentChunks(ctx context.Context, filename string) error

	// Query returns up to k chunks ordered by descending similarity to
	// the embedding. Exact ties keep insertion order (earlier wins).
	Query(ctx context.Context, embedding []float32, k int) ([]domain.RetrievedChunk, error)

	// SaveBlock stores a reusable block.
	SaveBlock(ctx context.Context, block domain.Block) error

	// GetBlock retrieves a block by ID.
	GetBlock(ctx context.Context, id string) (*domain.Block, error)

	// ListBlocks returns blocks matching the filter, ordered per sort
	// (descending on the sort field, ascending ID tie-break), capped at
	// limit.
	ListBlocks(ctx context.Context, filter domain.BlockFilter, sort domain.BlockSort, limit int) ([]domain.Block, error)

	// BumpUsage increments a block's usage count and refreshes its
	// last-used time. Safe to invoke concurrently for the same block:
	// increments are applied at least once, never silently dropped.
	BumpUsage(ctx context.Context, blockID string) error

	// Close releases resources.
	Close() error
}
