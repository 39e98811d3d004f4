// Package gemini provides a completion service adapter using the
// Google Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/clearbid-labs/propqa-cli/internal/core/ports/driven"
)

// Ensure CompletionService implements the interface.
var _ driven.CompletionService = (*CompletionService)(nil)

// DefaultModel is the model used when none is configured.
const DefaultModel = "gemini-1.5-flash-latest"

// Config holds configuration for the Gemini completion service.
type Config struct {
	// APIKey is the Gemini API key (required).
	APIKey string

	// Model is the model to use (default: gemini-1.5-flash-latest).
	Model string
}

// CompletionService synthesizes text using the Gemini API.
type CompletionService struct {
	client *genai.Client
	model  string
}

// NewCompletionService creates a new Gemini completion service. The
// context is used for client setup only.
func NewCompletionService(ctx context.Context, cfg Config) (*CompletionService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: create client: %w", err)
	}

	return &CompletionService{client: client, model: cfg.Model}, nil
}

// Complete sends the prompt messages and returns the generated text.
// System messages become the model's system instruction; the remaining
// messages are concatenated into the user prompt.
func (s *CompletionService) Complete(ctx context.Context, messages []driven.Message) (string, error) {
	model := s.client.GenerativeModel(s.model)

	var system, user strings.Builder
	for _, msg := range messages {
		if msg.Role == driven.RoleSystem {
			system.WriteString(msg.Content)
			system.WriteString("\n")
			continue
		}
		user.WriteString(msg.Content)
		user.WriteString("\n")
	}
	if system.Len() > 0 {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system.String())},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(user.String()))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini: empty response")
	}

	var text strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			text.WriteString(string(txt))
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("gemini: response contained no text parts")
	}
	return text.String(), nil
}

// ModelName returns the name of the model being used.
func (s *CompletionService) ModelName() string {
	return s.model
}

// Close releases resources.
func (s *CompletionService) Close() error {
	return s.client.Close()
}
