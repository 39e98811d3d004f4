// Package pgvector provides a PostgreSQL + pgvector implementation of
// the index store. Chunks are retrieved by cosine distance using the
// <=> operator; reusable blocks live in the same database.
package pgvector

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
	"github.com/clearbid-labs/propqa-cli/internal/core/ports/driven"
)

// Ensure IndexStore implements the interface.
var _ driven.IndexStore = (*IndexStore)(nil)

// DefaultDimensions matches text-embedding-3-small.
const DefaultDimensions = 1536

// Config holds configuration for the pgvector index store.
type Config struct {
	// ConnString is the PostgreSQL connection string (required).
	ConnString string

	// Dimensions is the embedding vector size the schema is created
	// with. Must match the configured embedding model.
	Dimensions int
}

// IndexStore is a pgvector-backed implementation of driven.IndexStore.
type IndexStore struct {
	pool *pgxpool.Pool
}

// NewIndexStore connects to PostgreSQL and ensures the schema exists.
func NewIndexStore(ctx context.Context, cfg Config) (*IndexStore, error) {
	if cfg.ConnString == "" {
		return nil, fmt.Errorf("pgvector: connection string is required")
	}
	if cfg.Dimensions <= 0 {
		cfg.Dimensions = DefaultDimensions
	}

	pool, err := pgxpool.New(ctx, cfg.ConnString)
	if err != nil {
		return nil, fmt.Errorf("pgvector: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pgvector: ping: %w", err)
	}

	s := &IndexStore{pool: pool}
	if err := s.initialize(ctx, cfg.Dimensions); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *IndexStore) initialize(ctx context.Context, dimensions int) error {
	if _, err := s.pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS vector`); err != nil {
		return fmt.Errorf("pgvector: create extension: %w", err)
	}

	_, err := s.pool.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS proposal_chunks (
			id TEXT PRIMARY KEY,
			document_id TEXT NOT NULL,
			content TEXT NOT NULL,
			position INTEGER NOT NULL,
			start_offset INTEGER NOT NULL,
			section TEXT NOT NULL DEFAULT '',
			filename TEXT NOT NULL,
			client TEXT NOT NULL,
			tags TEXT[] NOT NULL DEFAULT '{}',
			embedding vector(%d) NOT NULL,
			seq BIGSERIAL
		)
	`, dimensions))
	if err != nil {
		return fmt.Errorf("pgvector: create proposal_chunks: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		CREATE INDEX IF NOT EXISTS proposal_chunks_filename_idx ON proposal_chunks (filename);
		CREATE INDEX IF NOT EXISTS proposal_chunks_embedding_idx ON proposal_chunks
		USING ivfflat (embedding vector_cosine_ops) WITH (lists = 100)
	`)
	if err != nil {
		return fmt.Errorf("pgvector: create chunk indexes: %w", err)
	}

	_, err = s.pool.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS reusable_blocks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			content TEXT NOT NULL,
			embedding vector(%d) NOT NULL,
			tags TEXT[] NOT NULL DEFAULT '{}',
			author TEXT NOT NULL DEFAULT '',
			usage_count INTEGER NOT NULL DEFAULT 0,
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			last_used_at TIMESTAMPTZ
		)
	`, dimensions))
	if err != nil {
		return fmt.Errorf("pgvector: create reusable_blocks: %w", err)
	}
	return nil
}

// InsertChunk stores a chunk with its embedding.
func (s *IndexStore) InsertChunk(ctx context.Context, chunk domain.Chunk) error {
	tags := chunk.Tags
	if tags == nil {
		tags = []string{}
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO proposal_chunks
			(id, document_id, content, position, start_offset, section, filename, client, tags, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::vector)
		ON CONFLICT (id) DO UPDATE SET
			document_id = excluded.document_id,
			content = excluded.content,
			position = excluded.position,
			start_offset = excluded.start_offset,
			section = excluded.section,
			filename = excluded.filename,
			client = excluded.client,
			tags = excluded.tags,
			embedding = excluded.embedding
	`, chunk.ID, chunk.DocumentID, chunk.Content, chunk.Position, chunk.StartOffset,
		string(chunk.Section), chunk.Filename, chunk.Client, tags, vectorLiteral(chunk.Embedding))
	if err != nil {
		return fmt.Errorf("pgvector: insert chunk: %w", err)
	}
	return nil
}

// DeleteDocumentChunks removes all chunks derived from the named file.
func (s *IndexStore) DeleteDocumentChunks(ctx context.Context, filename string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM proposal_chunks WHERE filename = $1`, filename)
	if err != nil {
		return fmt.Errorf("pgvector: delete chunks for %s: %w", filename, err)
	}
	return nil
}

// Query returns up to k chunks by ascending cosine distance. The seq
// column breaks exact distance ties in insertion order.
func (s *IndexStore) Query(ctx context.Context, embedding []float32, k int) ([]domain.RetrievedChunk, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, document_id, content, position, start_offset, section, filename, client, tags,
		       embedding <=> $1::vector AS distance
		FROM proposal_chunks
		ORDER BY distance, seq
		LIMIT $2
	`, vectorLiteral(embedding), k)
	if err != nil {
		return nil, fmt.Errorf("pgvector: query chunks: %w", err)
	}
	defer rows.Close()

	var results []domain.RetrievedChunk
	for rows.Next() {
		var c domain.Chunk
		var section string
		var distance float64
		if err := rows.Scan(&c.ID, &c.DocumentID, &c.Content, &c.Position, &c.StartOffset,
			&section, &c.Filename, &c.Client, &c.Tags, &distance); err != nil {
			return nil, fmt.Errorf("pgvector: scan chunk: %w", err)
		}
		c.Section = domain.Section(section)
		results = append(results, domain.RetrievedChunk{
			Chunk:      c,
			Similarity: 1 - distance,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgvector: iterate chunks: %w", err)
	}
	return results, nil
}

// SaveBlock stores or replaces a block.
func (s *IndexStore) SaveBlock(ctx context.Context, block domain.Block) error {
	tags := block.Tags
	if tags == nil {
		tags = []string{}
	}
	var lastUsed *time.Time
	if !block.LastUsedAt.IsZero() {
		lastUsed = &block.LastUsedAt
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO reusable_blocks
			(id, title, content, embedding, tags, author, usage_count, notes, created_at, last_used_at)
		VALUES ($1, $2, $3, $4::vector, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			title = excluded.title,
			content = excluded.content,
			embedding = excluded.embedding,
			tags = excluded.tags,
			author = excluded.author,
			notes = excluded.notes
	`, block.ID, block.Title, block.Content, vectorLiteral(block.Embedding),
		tags, block.Author, block.UsageCount, block.Notes, block.CreatedAt, lastUsed)
	if err != nil {
		return fmt.Errorf("pgvector: save block: %w", err)
	}
	return nil
}

// GetBlock retrieves a block by ID.
func (s *IndexStore) GetBlock(ctx context.Context, id string) (*domain.Block, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, title, content, tags, author, usage_count, notes, created_at, last_used_at
		FROM reusable_blocks WHERE id = $1
	`, id)

	block, err := scanBlock(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("pgvector: get block: %w", err)
	}
	return block, nil
}

// ListBlocks returns blocks matching the filter, ordered per sort.
func (s *IndexStore) ListBlocks(ctx context.Context, filter domain.BlockFilter, sortBy domain.BlockSort, limit int) ([]domain.Block, error) {
	var conditions []string
	var args []any

	if filter.Author != "" {
		args = append(args, filter.Author)
		conditions = append(conditions, fmt.Sprintf("author = $%d", len(args)))
	}
	if len(filter.Tags) > 0 {
		args = append(args, filter.Tags)
		conditions = append(conditions, fmt.Sprintf("tags && $%d", len(args)))
	}
	if filter.Contains != "" {
		args = append(args, "%"+filter.Contains+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf("(title ILIKE $%d OR content ILIKE $%d)", n, n))
	}

	query := `SELECT id, title, content, tags, author, usage_count, notes, created_at, last_used_at
		FROM reusable_blocks`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	switch sortBy {
	case domain.BlockSortPopular:
		query += " ORDER BY usage_count DESC, id"
	case domain.BlockSortLastUsed:
		query += " ORDER BY last_used_at DESC NULLS LAST, id"
	default:
		query += " ORDER BY created_at DESC, id"
	}
	args = append(args, limit)
	query += " LIMIT $" + strconv.Itoa(len(args))

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgvector: list blocks: %w", err)
	}
	defer rows.Close()

	var blocks []domain.Block
	for rows.Next() {
		block, err := scanBlock(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("pgvector: scan block: %w", err)
		}
		blocks = append(blocks, *block)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgvector: iterate blocks: %w", err)
	}
	return blocks, nil
}

// BumpUsage increments a block's usage count atomically in SQL, so
// concurrent bumps never lose increments.
func (s *IndexStore) BumpUsage(ctx context.Context, blockID string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE reusable_blocks
		SET usage_count = usage_count + 1, last_used_at = now()
		WHERE id = $1
	`, blockID)
	if err != nil {
		return fmt.Errorf("pgvector: bump usage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Close releases the connection pool.
func (s *IndexStore) Close() error {
	s.pool.Close()
	return nil
}

func scanBlock(scan func(dest ...any) error) (*domain.Block, error) {
	var block domain.Block
	var lastUsed *time.Time
	if err := scan(&block.ID, &block.Title, &block.Content, &block.Tags, &block.Author,
		&block.UsageCount, &block.Notes, &block.CreatedAt, &lastUsed); err != nil {
		return nil, err
	}
	if lastUsed != nil {
		block.LastUsedAt = *lastUsed
	}
	return &block, nil
}

// vectorLiteral renders an embedding in pgvector's input format, e.g.
// "[0.1,0.2,0.3]".
func vectorLiteral(embedding []float32) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, v := range embedding {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.FormatFloat(float64(v), 'f', -1, 32))
	}
	b.WriteByte(']')
	return b.String()
}
