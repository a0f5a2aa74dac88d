package llm

import (
	"context"
)

// LLMClient sends a single user prompt and returns the model's text reply.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
