package llm

import (
	"context"
	"encoding/json"
)

// Provider sends a single-turn prompt to an LLM and returns its reply.
type Provider interface {
	// Complete sends the prompt. When the prompt carries a Schema the
	// provider uses its native structured-output mechanism and the reply
	// Content is JSON validated against that schema.
	Complete(ctx context.Context, p Prompt) (*Reply, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Prompt is a single-turn request: a system instruction and one user message.
type Prompt struct {
	System string
	User   string

	// Schema is the JSON Schema the reply must conform to. Nil means the
	// raw text is returned.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default, which
	// for scoring prompts should be as deterministic as possible.
	Temperature float64
}

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies the schema, kebab-case, e.g. "potability-score".
	Name string

	Description string

	// Definition is the JSON Schema document as a map.
	Definition map[string]any
}

// Reply holds the LLM's output.
type Reply struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}
