package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
	"github.com/clearbid-labs/propqa-cli/internal/core/ports/driven"
	"github.com/clearbid-labs/propqa-cli/internal/core/ports/driving"
	"github.com/clearbid-labs/propqa-cli/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// DefaultIngestConcurrency bounds parallel embed+insert work per
// document. Chunking itself is synchronous CPU work; only the embedding
// calls are I/O bound.
const DefaultIngestConcurrency = 4

// IngestService turns proposal files into indexed chunks.
type IngestService struct {
	normalisers map[string]driven.Normaliser
	pipeline    driven.PostProcessorPipeline
	embedder    driven.EmbeddingService
	index       driven.IndexStore
	limiter     *rate.Limiter
	concurrency int
}

// NewIngestService creates an ingest service. The limiter throttles
// embedding calls (nil means unlimited); normalisers are selected by
// file extension.
func NewIngestService(
	normalisers []driven.Normaliser,
	pipeline driven.PostProcessorPipeline,
	embedder driven.EmbeddingService,
	index driven.IndexStore,
	limiter *rate.Limiter,
	concurrency int,
) *IngestService {
	byExt := make(map[string]driven.Normaliser)
	for _, n := range normalisers {
		for _, ext := range n.Extensions() {
			byExt[ext] = n
		}
	}
	if concurrency <= 0 {
		concurrency = DefaultIngestConcurrency
	}
	return &IngestService{
		normalisers: byExt,
		pipeline:    pipeline,
		embedder:    embedder,
		index:       index,
		limiter:     limiter,
		concurrency: concurrency,
	}
}

// IngestFile normalises one file, chunks and labels it, embeds each
// chunk, and inserts it into the index. Embedding and insertion run in
// parallel across chunks; one chunk's failure never cancels its
// siblings. The result reports partial success counts plus per-chunk
// errors, never a collapsed overall verdict.
func (s *IngestService) IngestFile(ctx context.Context, path string, opts driving.IngestOptions) (*driving.IngestResult, error) {
	if strings.TrimSpace(opts.Client) == "" {
		return nil, fmt.Errorf("client is required: %w", domain.ErrInvalidInput)
	}

	ext := strings.ToLower(filepath.Ext(path))
	normaliser, ok := s.normalisers[ext]
	if !ok {
		return nil, fmt.Errorf("no normaliser for %q: %w", ext, domain.ErrUnsupportedType)
	}

	logger.Section("Ingestion")
	logger.Debug("Normalising %s", path)
	content, err := normaliser.Normalise(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("normalise %s: %w", path, err)
	}
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("document %s has no text content: %w", path, domain.ErrInvalidInput)
	}

	date := opts.Date
	if date.IsZero() {
		date = time.Now()
	}
	doc := domain.Document{
		ID:        uuid.New().String(),
		Filename:  filepath.Base(path),
		Client:    opts.Client,
		Date:      date,
		Tags:      opts.Tags,
		Content:   content,
		CreatedAt: time.Now(),
	}

	chunks, err := s.pipeline.Process(ctx, &doc)
	if err != nil {
		return nil, fmt.Errorf("chunk %s: %w", doc.Filename, err)
	}
	logger.Info("Document %s produced %d chunks", doc.Filename, len(chunks))

	// Earlier chunks from the same filename are superseded, not joined.
	if err := s.index.DeleteDocumentChunks(ctx, doc.Filename); err != nil {
		return nil, fmt.Errorf("supersede %s: %w", doc.Filename, err)
	}

	chunkErrs := make([]error, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range chunks {
		g.Go(func() error {
			chunkErrs[i] = s.embedAndInsert(gctx, &chunks[i])
			// Failures are collected, not returned: returning would
			// cancel sibling chunks.
			return nil
		})
	}
	_ = g.Wait()

	result := &driving.IngestResult{
		Document:   doc,
		ChunkCount: len(chunks),
	}
	for i, cerr := range chunkErrs {
		if cerr != nil {
			result.Failed++
			result.Errors = append(result.Errors, driving.ChunkError{ChunkID: chunks[i].ID, Err: cerr})
			logger.Warn("Chunk %s failed: %v", chunks[i].ID, cerr)
			continue
		}
		result.Inserted++
		if chunks[i].Section != domain.SectionNone {
			result.Sections = append(result.Sections, chunks[i].Section)
		}
	}
	logger.Info("Ingested %d/%d chunks from %s", result.Inserted, result.ChunkCount, doc.Filename)
	return result, nil
}

// embedAndInsert runs the two I/O steps for one chunk.
func (s *IngestService) embedAndInsert(ctx context.Context, chunk *domain.Chunk) error {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
	}
	embedding, err := s.embedder.Embed(ctx, chunk.Content)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrEmbeddingUnavailable, err)
	}
	chunk.Embedding = embedding

	if err := s.index.InsertChunk(ctx, *chunk); err != nil {
		return fmt.Errorf("insert chunk: %w", err)
	}
	return nil
}
