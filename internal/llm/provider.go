package llm

import (
	"context"
	"encoding/json"
)

// Provider is the abstraction over the question-generation capability.
// Wakey only ever does single-turn structured generation: one system prompt,
// one user prompt, one JSON response.
type Provider interface {
	// Generate sends the prompt and returns the structured response.
	// When req.Schema is set the provider uses its native structured
	// output mechanism and the returned Content is schema-validated JSON.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured with.
	ModelID() string
}

// Request describes one generation call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Prompt is the user message.
	Prompt string

	// Schema, when set, is the JSON Schema the response must conform to.
	Schema *Schema

	// MaxTokens caps the response length.
	MaxTokens int

	// Temperature controls randomness, 0.0-1.0. Zero means deterministic.
	Temperature float64
}

// Schema describes the expected JSON response structure.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name
	// for OpenAI). Kebab-case.
	Name string

	// Description guides the model.
	Description string

	// Definition is the JSON Schema as a map.
	Definition map[string]any
}

// Response is the model's output.
type Response struct {
	// Content is the generated JSON (validated when a Schema was given).
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the request.
	Model string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
}
