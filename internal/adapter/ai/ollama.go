package ai

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// OllamaEndpointConfig holds the configuration for a single Ollama endpoint.
type OllamaEndpointConfig struct {
	BaseURL string // e.g. http://localhost:11434 or https://ollama.com
	Model   string // e.g. all-minilm, llama3.2
	Token   string // Bearer token for Ollama Cloud (empty = no auth)
}

// newOllamaClient builds an api.Client for the endpoint, attaching the bearer
// token to every request when one is configured.
func newOllamaClient(cfg OllamaEndpointConfig, httpClient *http.Client) (*api.Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse ollama url %q: %w", cfg.BaseURL, err)
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if cfg.Token != "" {
		next := httpClient.Transport
		if next == nil {
			next = http.DefaultTransport
		}
		wrapped := *httpClient
		wrapped.Transport = &bearerTransport{token: cfg.Token, next: next}
		httpClient = &wrapped
	}
	return api.NewClient(base, httpClient), nil
}

type bearerTransport struct {
	token string
	next  http.RoundTripper
}

func (t *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("Authorization", "Bearer "+t.token)
	return t.next.RoundTrip(req)
}

// OllamaEmbedder implements port.Embedder with a sentence-embedding model
// served by Ollama (mean pooled, e.g. all-minilm with 384 dimensions).
type OllamaEmbedder struct {
	client    *api.Client
	model     string
	dimension int
}

// NewOllamaEmbedder creates an embedder. A positive dimension makes Embed
// reject vectors of any other length.
func NewOllamaEmbedder(cfg OllamaEndpointConfig, dimension int, httpClient *http.Client) (*OllamaEmbedder, error) {
	client, err := newOllamaClient(cfg, httpClient)
	if err != nil {
		return nil, err
	}
	return &OllamaEmbedder{client: client, model: cfg.Model, dimension: dimension}, nil
}

// ModelName returns the embedding model identifier.
func (o *OllamaEmbedder) ModelName() string {
	return o.model
}

// Embed generates a unit-length vector embedding for the given text.
func (o *OllamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := o.client.Embed(ctx, &api.EmbedRequest{
		Model: o.model,
		Input: text,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama embed: %w", err)
	}
	if len(resp.Embeddings) == 0 || len(resp.Embeddings[0]) == 0 {
		return nil, fmt.Errorf("ollama embed: empty response")
	}

	vector := resp.Embeddings[0]
	if o.dimension > 0 && len(vector) != o.dimension {
		return nil, fmt.Errorf("ollama embed: dimension mismatch: expected %d, got %d", o.dimension, len(vector))
	}
	return Normalize(vector), nil
}

// HealthCheck pings the Ollama server.
func (o *OllamaEmbedder) HealthCheck(ctx context.Context) error {
	return o.client.Heartbeat(ctx)
}

// Normalize returns a copy of v scaled to unit L2 length. A zero vector is
// returned unchanged.
func Normalize(v []float32) []float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	out := make([]float32, len(v))
	if sum == 0 {
		copy(out, v)
		return out
	}
	norm := math.Sqrt(sum)
	for i, x := range v {
		out[i] = float32(float64(x) / norm)
	}
	return out
}

// OllamaGenerator implements port.Generator using a local or cloud Ollama chat model.
type OllamaGenerator struct {
	client *api.Client
	model  string
}

// NewOllamaGenerator creates a chat-backed generator.
func NewOllamaGenerator(cfg OllamaEndpointConfig, httpClient *http.Client) (*OllamaGenerator, error) {
	client, err := newOllamaClient(cfg, httpClient)
	if err != nil {
		return nil, err
	}
	return &OllamaGenerator{client: client, model: cfg.Model}, nil
}

// ModelName returns the chat model identifier.
func (o *OllamaGenerator) ModelName() string {
	return o.model
}

// Complete sends the system and user turns and returns the full response.
func (o *OllamaGenerator) Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	stream := false
	req := &api.ChatRequest{
		Model: o.model,
		Messages: []api.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Stream: &stream,
	}

	var sb strings.Builder
	err := o.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		sb.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("ollama chat: %w", err)
	}
	return sb.String(), nil
}
