package domain

import "time"

// Block is a user-curated reusable excerpt. Unlike chunks, blocks are
// long-lived and hand-titled: they are created by explicit user action,
// mutated only through usage-count bumps, and never auto-deleted.
type Block struct {
	// ID is the unique identifier for the block.
	ID string

	// Title is the human-readable title.
	Title string

	// Content is the excerpt text.
	Content string

	// Embedding is the vector representation of Content.
	Embedding []float32

	// Tags is an unordered label set used for filtering.
	Tags []string

	// Author references whoever curated the block.
	Author string

	// UsageCount tracks how often the block was reused. Increments are
	// commutative; concurrent bumps must never be silently dropped.
	UsageCount int

	// Notes is free-form commentary.
	Notes string

	CreatedAt  time.Time
	LastUsedAt time.Time
}

// BlockSort selects the ordering for block listings.
type BlockSort string

// Block sort orders. Each is a total order: descending on the named
// field with ascending ID as the tie-break.
const (
	BlockSortRecent   BlockSort = "recent"
	BlockSortPopular  BlockSort = "popular"
	BlockSortLastUsed BlockSort = "last_used"
)

// BlockFilter narrows a block listing. Zero values mean "no filter".
type BlockFilter struct {
	// Tags matches blocks whose tag set overlaps this set.
	Tags []string

	// Author matches blocks by exact author reference.
	Author string

	// Contains matches blocks whose title or content contains the
	// substring (case-insensitive).
	Contains string
}
