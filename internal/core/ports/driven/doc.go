// Package driven provides interfaces for infrastructure adapters
// (secondary/outbound ports). The core services depend on these
// contracts only, so the pure chunking, ranking, and aggregation logic
// is testable without any network access.
package driven
