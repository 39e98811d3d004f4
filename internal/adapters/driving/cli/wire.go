package cli

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/time/rate"

	configfile "github.com/clearbid-labs/propqa-cli/internal/adapters/driven/config/file"
	ollamaembed "github.com/clearbid-labs/propqa-cli/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/clearbid-labs/propqa-cli/internal/adapters/driven/embedding/openai"
	"github.com/clearbid-labs/propqa-cli/internal/adapters/driven/llm/gemini"
	openaillm "github.com/clearbid-labs/propqa-cli/internal/adapters/driven/llm/openai"
	"github.com/clearbid-labs/propqa-cli/internal/adapters/driven/storage/memory"
	"github.com/clearbid-labs/propqa-cli/internal/adapters/driven/storage/pgvector"
	"github.com/clearbid-labs/propqa-cli/internal/adapters/driven/storage/sqlite"
	"github.com/clearbid-labs/propqa-cli/internal/core/ports/driven"
	"github.com/clearbid-labs/propqa-cli/internal/core/ports/driving"
	"github.com/clearbid-labs/propqa-cli/internal/core/services"
	"github.com/clearbid-labs/propqa-cli/internal/logger"
	"github.com/clearbid-labs/propqa-cli/internal/normalisers/pdf"
	"github.com/clearbid-labs/propqa-cli/internal/normalisers/plaintext"
	"github.com/clearbid-labs/propqa-cli/internal/postprocessors"
	"github.com/clearbid-labs/propqa-cli/internal/postprocessors/chunker"
	"github.com/clearbid-labs/propqa-cli/internal/postprocessors/sectionlabel"
)

// Package-level services, wired once per invocation. Tests inject
// their own implementations before running commands.
var (
	answerService   driving.AnswerService
	ingestService   driving.IngestService
	blockService    driving.BlockService
	feedbackService driving.FeedbackService

	closers []io.Closer
)

// ensureServices wires adapters and services from configuration. It is
// a no-op when services are already set.
func ensureServices(ctx context.Context) error {
	if answerService != nil && ingestService != nil && blockService != nil && feedbackService != nil {
		return nil
	}

	path := flagConfig
	if path == "" {
		var err error
		path, err = configfile.DefaultPath()
		if err != nil {
			return err
		}
	}
	cfg, err := configfile.Load(path)
	if err != nil {
		return err
	}
	logger.Debug("Loaded config from %s", path)

	embedder, err := buildEmbedder(cfg)
	if err != nil {
		return err
	}
	closers = append(closers, embedder)

	completer, err := buildCompleter(ctx, cfg)
	if err != nil {
		return err
	}
	closers = append(closers, completer)

	index, err := buildIndex(ctx, cfg, embedder.Dimensions())
	if err != nil {
		return err
	}
	closers = append(closers, index)

	feedbackStore, err := sqlite.NewFeedbackStore(cfg.Feedback.DataDir)
	if err != nil {
		return err
	}
	closers = append(closers, feedbackStore)

	pipeline := postprocessors.NewPipeline(
		chunker.New(
			chunker.WithChunkSize(cfg.Ingest.ChunkSize),
			chunker.WithOverlap(cfg.Ingest.Overlap),
		),
		sectionlabel.New(),
	)
	limiter := rate.NewLimiter(rate.Limit(cfg.Ingest.EmbedRatePerSecond), 1)
	normalisers := []driven.Normaliser{plaintext.New(), pdf.New()}

	ingestService = services.NewIngestService(normalisers, pipeline, embedder, index, limiter, cfg.Ingest.Concurrency)
	answerService = services.NewAnswerService(embedder, index, completer, cfg.Ask.TopK)
	blockService = services.NewBlockService(embedder, index)
	feedbackService = services.NewFeedbackService(feedbackStore)
	return nil
}

func buildEmbedder(cfg *configfile.Config) (driven.EmbeddingService, error) {
	switch cfg.Embedding.Provider {
	case "openai":
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  cfg.Embedding.APIKey,
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
		})
	case "ollama":
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
		})
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Embedding.Provider)
	}
}

func buildCompleter(ctx context.Context, cfg *configfile.Config) (driven.CompletionService, error) {
	switch cfg.Completion.Provider {
	case "openai":
		return openaillm.NewCompletionService(openaillm.Config{
			APIKey:  cfg.Completion.APIKey,
			BaseURL: cfg.Completion.BaseURL,
			Model:   cfg.Completion.Model,
		})
	case "gemini":
		return gemini.NewCompletionService(ctx, gemini.Config{
			APIKey: cfg.Completion.APIKey,
			Model:  cfg.Completion.Model,
		})
	default:
		return nil, fmt.Errorf("unknown completion provider %q", cfg.Completion.Provider)
	}
}

func buildIndex(ctx context.Context, cfg *configfile.Config, dimensions int) (driven.IndexStore, error) {
	switch cfg.Index.Backend {
	case "pgvector":
		return pgvector.NewIndexStore(ctx, pgvector.Config{
			ConnString: cfg.Index.ConnString,
			Dimensions: dimensions,
		})
	case "memory":
		// Useful for smoke tests; the index does not survive the process.
		return memory.NewIndexStore(), nil
	default:
		return nil, fmt.Errorf("unknown index backend %q", cfg.Index.Backend)
	}
}

func closeServices() {
	for _, c := range closers {
		if err := c.Close(); err != nil {
			logger.Warn("Close failed: %v", err)
		}
	}
	closers = nil
}
