package port

import "context"

// Embedder turns free text into a fixed-length, unit-length vector.
// Implementations must be safe for concurrent use.
type Embedder interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)
}

// ReadyEmbedder is an Embedder whose initialization completes asynchronously.
type ReadyEmbedder interface {
	Embedder

	// Ready is closed once the embedder has finished initializing.
	Ready() <-chan struct{}
}

// Generator abstracts the LLM backend used to phrase answers.
// Implementations can target xAI, OpenAI, Ollama, Gemini, or Claude.
type Generator interface {
	// ModelName returns the identifier of the model being used.
	ModelName() string

	// Complete sends a single-turn prompt and returns the raw completion text.
	Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error)
}
