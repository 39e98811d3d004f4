package driven

import "context"

// CompletionService synthesizes text from prompt messages.
// The core only assembles prompt contents; transport, authentication,
// and model selection live behind this port.
type CompletionService interface {
	// Complete sends the prompt messages and returns the generated text.
	Complete(ctx context.Context, messages []Message) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Close releases resources.
	Close() error
}

// Message is a single prompt message.
type Message struct {
	// Role is one of "system" or "user".
	Role string

	// Content is the message text.
	Content string
}

// Message roles.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)
