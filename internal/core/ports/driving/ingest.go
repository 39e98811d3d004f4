package driving

import (
	"context"
	"time"

	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
)

// IngestService turns proposal files into retrievable chunks.
type IngestService interface {
	// IngestFile normalises, chunks, embeds, and indexes one file.
	// Per-chunk failures are collected, not fatal: the result reports
	// partial success counts alongside per-chunk detail.
	IngestFile(ctx context.Context, path string, opts IngestOptions) (*IngestResult, error)
}

// IngestOptions carries the document metadata supplied at ingestion.
type IngestOptions struct {
	// Client is the client the proposal was written for (required).
	Client string

	// Date is the proposal date; zero means "use ingestion time".
	Date time.Time

	// Tags are free-form labels copied onto every chunk.
	Tags []string
}

// ChunkError reports one failed chunk within a batch.
type ChunkError struct {
	ChunkID string
	Err     error
}

// IngestResult reports the outcome of ingesting one document.
// Inserted+Failed always equals ChunkCount; a batch is never collapsed
// to overall success or overall failure.
type IngestResult struct {
	Document   domain.Document
	ChunkCount int
	Inserted   int
	Failed     int
	Errors     []ChunkError

	// Sections lists the section labels that were assigned, in source
	// order, for operator feedback.
	Sections []domain.Section
}
