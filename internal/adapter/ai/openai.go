package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Default endpoint for xAI's OpenAI-compatible API.
const (
	DefaultXAIBaseURL = "https://api.x.ai/v1"
	DefaultXAIModel   = "grok-2-1212"
)

// OpenAIEndpointConfig configures an OpenAI-compatible chat completions endpoint.
type OpenAIEndpointConfig struct {
	BaseURL   string // e.g. https://api.x.ai/v1 or https://api.openai.com/v1
	Model     string
	Token     string
	MaxTokens int // 0 = provider default
}

// OpenAIGenerator implements port.Generator against any OpenAI-compatible
// /chat/completions endpoint (xAI Grok, OpenAI, vLLM, LM Studio).
type OpenAIGenerator struct {
	cfg        OpenAIEndpointConfig
	httpClient *http.Client
}

// NewOpenAIGenerator creates a new OpenAI-compatible generator.
func NewOpenAIGenerator(cfg OpenAIEndpointConfig, httpClient *http.Client) *OpenAIGenerator {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultXAIBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.Model == "" {
		cfg.Model = DefaultXAIModel
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &OpenAIGenerator{cfg: cfg, httpClient: httpClient}
}

// ModelName returns the chat model identifier.
func (o *OpenAIGenerator) ModelName() string {
	return o.cfg.Model
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens,omitempty"`
	Stream    bool          `json:"stream"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Complete sends the system and user turns and returns the first choice.
func (o *OpenAIGenerator) Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	payload := chatCompletionRequest{
		Model: o.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		MaxTokens: o.cfg.MaxTokens,
	}

	body, err := o.post(ctx, "/chat/completions", payload)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}

	var resp chatCompletionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("chat completion decode: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// post is a helper for POST requests to the endpoint (with optional bearer token).
func (o *OpenAIGenerator) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.cfg.BaseURL+path, bytes.NewReader(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if o.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+o.cfg.Token)
	}

	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("API error (%d): %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
