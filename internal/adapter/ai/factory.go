package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/arturoeanton/portfolio-rag/internal/port"
)

// Supported generator providers.
const (
	ProviderXAI    = "xai"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
	ProviderClaude = "claude"
)

// GeneratorConfig selects and configures the generator implementation.
type GeneratorConfig struct {
	Provider  string
	BaseURL   string
	Model     string
	APIKey    string
	MaxTokens int

	// RatePerSecond and Burst throttle outbound completions; 0 disables.
	RatePerSecond float64
	Burst         int
}

// NewGenerator builds the configured generator, rate-limited when requested.
func NewGenerator(ctx context.Context, cfg GeneratorConfig, httpClient *http.Client) (port.Generator, error) {
	var (
		gen port.Generator
		err error
	)

	switch strings.ToLower(cfg.Provider) {
	case ProviderXAI, "":
		gen = NewOpenAIGenerator(OpenAIEndpointConfig{
			BaseURL:   cfg.BaseURL,
			Model:     cfg.Model,
			Token:     cfg.APIKey,
			MaxTokens: cfg.MaxTokens,
		}, httpClient)
	case ProviderOpenAI:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "https://api.openai.com/v1"
		}
		model := cfg.Model
		if model == "" {
			model = "gpt-4o-mini"
		}
		gen = NewOpenAIGenerator(OpenAIEndpointConfig{
			BaseURL:   baseURL,
			Model:     model,
			Token:     cfg.APIKey,
			MaxTokens: cfg.MaxTokens,
		}, httpClient)
	case ProviderOllama:
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		model := cfg.Model
		if model == "" {
			model = "llama3.2"
		}
		gen, err = NewOllamaGenerator(OllamaEndpointConfig{
			BaseURL: baseURL,
			Model:   model,
			Token:   cfg.APIKey,
		}, httpClient)
	case ProviderGemini:
		gen, err = NewGeminiGenerator(ctx, cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.MaxTokens)
	case ProviderClaude:
		gen, err = NewClaudeGenerator(cfg.APIKey, cfg.Model, cfg.BaseURL, cfg.MaxTokens)
	default:
		return nil, fmt.Errorf("%w: generator %q", port.ErrUnknownProvider, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return NewRateLimitedGenerator(gen, cfg.RatePerSecond, cfg.Burst), nil
}
