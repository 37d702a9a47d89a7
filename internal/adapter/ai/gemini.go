package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// DefaultGeminiModel is used when no model is configured.
const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiGenerator implements port.Generator using Google's Gemini API.
type GeminiGenerator struct {
	client    *genai.Client
	model     string
	maxTokens int32
}

// NewGeminiGenerator creates a Gemini-backed generator. A non-empty baseURL
// overrides the API endpoint.
func NewGeminiGenerator(ctx context.Context, apiKey, model, baseURL string, maxTokens int) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: API key is required (set LLM_API_KEY)")
	}
	if model == "" {
		model = DefaultGeminiModel
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if baseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: init client: %w", err)
	}

	return &GeminiGenerator{client: client, model: model, maxTokens: int32(maxTokens)}, nil
}

// ModelName returns the chat model identifier.
func (g *GeminiGenerator) ModelName() string {
	return g.model
}

// Complete sends the user turn with the persona as system instruction.
func (g *GeminiGenerator) Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}
	if g.maxTokens > 0 {
		config.MaxOutputTokens = g.maxTokens
	}

	contents := []*genai.Content{genai.NewContentFromText(userPrompt, genai.RoleUser)}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("gemini generate: nil response")
	}
	return resp.Text(), nil
}
