package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
)

func TestBlockService_Create(t *testing.T) {
	index := &mockIndexStore{}
	service := NewBlockService(&mockEmbeddingService{}, index)

	block, err := service.Create(context.Background(), "Pricing boilerplate", "Our standard rates are...", "jane", "reviewed", []string{"pricing"})

	require.NoError(t, err)
	assert.NotEmpty(t, block.ID)
	assert.Equal(t, "Pricing boilerplate", block.Title)
	assert.Equal(t, "jane", block.Author)
	assert.NotEmpty(t, block.Embedding)
	assert.False(t, block.CreatedAt.IsZero())
	assert.Zero(t, block.UsageCount)
	require.Len(t, index.blocks, 1)
	assert.Equal(t, block.ID, index.blocks[0].ID)
}

func TestBlockService_Create_MissingFields(t *testing.T) {
	service := NewBlockService(&mockEmbeddingService{}, &mockIndexStore{})

	_, err := service.Create(context.Background(), "", "content", "", "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = service.Create(context.Background(), "title", "   ", "", "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBlockService_Create_EmbeddingError(t *testing.T) {
	embedder := &mockEmbeddingService{embedErr: errors.New("connection refused")}
	index := &mockIndexStore{}
	service := NewBlockService(embedder, index)

	_, err := service.Create(context.Background(), "title", "content", "", "", nil)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
	assert.Empty(t, index.blocks)
}

func TestBlockService_List_Defaults(t *testing.T) {
	index := &mockIndexStore{blocks: []domain.Block{{ID: "b1"}, {ID: "b2"}}}
	service := NewBlockService(&mockEmbeddingService{}, index)

	blocks, err := service.List(context.Background(), domain.BlockFilter{}, "", 0)

	require.NoError(t, err)
	assert.Len(t, blocks, 2)
}

func TestBlockService_List_UnknownSort(t *testing.T) {
	service := NewBlockService(&mockEmbeddingService{}, &mockIndexStore{})

	_, err := service.List(context.Background(), domain.BlockFilter{}, "alphabetical", 10)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBlockService_Use(t *testing.T) {
	index := &mockIndexStore{}
	service := NewBlockService(&mockEmbeddingService{}, index)

	result := service.Use(context.Background(), []string{"b1", "b2", "b3"})

	assert.Equal(t, 3, result.Succeeded)
	assert.Equal(t, 0, result.Failed)
	assert.Empty(t, result.Errors)
	assert.Equal(t, 1, index.bumps["b1"])
	assert.Equal(t, 1, index.bumps["b2"])
	assert.Equal(t, 1, index.bumps["b3"])
}

func TestBlockService_Use_PartialFailure(t *testing.T) {
	index := &mockIndexStore{
		bumpErrs: map[string]error{"missing": domain.ErrNotFound},
	}
	service := NewBlockService(&mockEmbeddingService{}, index)

	result := service.Use(context.Background(), []string{"b1", "missing", "b2"})

	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 1, result.Failed)
	require.Contains(t, result.Errors, "missing")
	assert.ErrorIs(t, result.Errors["missing"], domain.ErrNotFound)
	// Failures for one id never block bumps for the others.
	assert.Equal(t, 1, index.bumps["b1"])
	assert.Equal(t, 1, index.bumps["b2"])
}

func TestBlockService_Use_SameIDTwice(t *testing.T) {
	index := &mockIndexStore{}
	service := NewBlockService(&mockEmbeddingService{}, index)

	result := service.Use(context.Background(), []string{"b1", "b1"})

	assert.Equal(t, 2, result.Succeeded)
	assert.Equal(t, 2, index.bumps["b1"])
}

func TestBlockService_Use_Empty(t *testing.T) {
	service := NewBlockService(&mockEmbeddingService{}, &mockIndexStore{})

	result := service.Use(context.Background(), nil)

	assert.Equal(t, 0, result.Succeeded)
	assert.Equal(t, 0, result.Failed)
}
