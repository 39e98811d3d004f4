package domain

import "time"

// Rating is the outcome a user assigned to an answer.
type Rating string

// Answer ratings.
const (
	RatingGood Rating = "good"
	RatingBad  Rating = "bad"
)

// Valid reports whether the rating is one of the known values.
func (r Rating) Valid() bool {
	return r == RatingGood || r == RatingBad
}

// FeedbackRecord captures how a drafted answer was received.
// Records are append-only: the core never mutates or deletes them.
type FeedbackRecord struct {
	// ID is the unique identifier for the record.
	ID string

	// Question is the query the user asked.
	Question string

	// Answer is the text that was presented.
	Answer string

	// Rating is the user's verdict.
	Rating Rating

	// QueryType segments feedback statistics by question category.
	QueryType QueryType

	// ChunkIDs lists the chunks the answer cited, in citation order.
	ChunkIDs []string

	// Reason is optional free-text explaining the rating.
	Reason string

	CreatedAt time.Time
}
