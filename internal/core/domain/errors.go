package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or missing required input,
	// such as an empty question or document metadata. Not retryable.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmbeddingUnavailable indicates the embedding service call
	// failed. Fatal for the current request; no retrieval is attempted.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrRetrievalUnavailable indicates the vector store query failed.
	// Fatal for the current request.
	ErrRetrievalUnavailable = errors.New("retrieval store unavailable")

	// ErrSynthesisUnavailable indicates the completion service call
	// failed. Fatal: an ungrounded answer is never fabricated in its
	// place.
	ErrSynthesisUnavailable = errors.New("synthesis service unavailable")

	// ErrMalformedRecord indicates a feedback record could not be
	// decoded. The record is skipped and counted; aggregation over the
	// remaining records continues.
	ErrMalformedRecord = errors.New("malformed feedback record")

	// ErrUnsupportedType indicates an unknown file type or provider name.
	ErrUnsupportedType = errors.New("unsupported type")
)
