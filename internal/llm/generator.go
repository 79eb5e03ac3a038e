// Package llm provides JSON-mode text generation using langchaingo.
package llm

import "context"

// Generator produces a JSON document from a system and user prompt.
// Implementations must return the raw model text; callers decode and
// validate it.
type Generator interface {
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Name() string
}
