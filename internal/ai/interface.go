package ai

import (
	"context"
)

// LLMProvider defines the contract for interacting with AI models.
// Implementations return the model's raw text; callers treat it as untrusted.
type LLMProvider interface {
	// GenerateJSON asks the model for a single JSON object.
	GenerateJSON(ctx context.Context, prompt string) (string, error)

	// GenerateText asks the model for a free-form conversational answer.
	GenerateText(ctx context.Context, prompt string) (string, error)
}
