package driven

import (
	"context"

	"github.com/clearbid-labs/propqa-cli/internal/core/domain"
)

// FeedbackStore persists answer feedback records. Records are
// append-only; retention and deletion are the store's concern, not the
// core's.
type FeedbackStore interface {
	// Append stores a new feedback record.
	Append(ctx context.Context, record domain.FeedbackRecord) error

	// List returns a snapshot of all records plus the count of records
	// skipped because their stored encoding could not be decoded.
	// A malformed record never aborts the read of the others.
	List(ctx context.Context) (records []domain.FeedbackRecord, malformed int, err error)

	// Close releases resources.
	Close() error
}
