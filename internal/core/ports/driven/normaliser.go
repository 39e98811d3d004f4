package driven

import "context"

// Normaliser extracts plain text from a proposal file.
// Each normaliser handles specific file extensions (e.g. .pdf, .txt).
type Normaliser interface {
	// Extensions returns the file extensions this normaliser handles,
	// lower-case with leading dot.
	Extensions() []string

	// Normalise reads the file and returns its text content.
	Normalise(ctx context.Context, path string) (string, error)
}
