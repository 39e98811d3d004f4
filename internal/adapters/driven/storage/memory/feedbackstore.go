package memory

import (
	"context"
	"sync"

	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
	"github.com/clearbid-labs/propqa-cli/internal/core/ports/driven"
)

// Ensure FeedbackStore implements the interface.
var _ driven.FeedbackStore = (*FeedbackStore)(nil)

// FeedbackStore is an in-memory implementation of driven.FeedbackStore.
type FeedbackStore struct {
	mu      sync.RWMutex
	records []domain.FeedbackRecord
}

// NewFeedbackStore creates a new in-memory feedback store.
func NewFeedbackStore() *FeedbackStore {
	return &FeedbackStore{}
}

// Append stores a new feedback record.
func (s *FeedbackStore) Append(_ context.Context, record domain.FeedbackRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// List returns a snapshot of all records. In-memory records are never
// malformed, so the skipped count is always zero.
func (s *FeedbackStore) List(_ context.Context) ([]domain.FeedbackRecord, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make([]domain.FeedbackRecord, len(s.records))
	copy(snapshot, s.records)
	return snapshot, 0, nil
}

// Close releases resources.
func (s *FeedbackStore) Close() error {
	return nil
}
