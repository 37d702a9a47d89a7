package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// Claude defaults.
const (
	DefaultClaudeModel     = "claude-sonnet-4-20250514"
	DefaultClaudeMaxTokens = 1024
)

// ClaudeGenerator implements port.Generator using the Anthropic Messages API.
type ClaudeGenerator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewClaudeGenerator creates a Claude-backed generator. A non-empty baseURL
// overrides the API endpoint.
func NewClaudeGenerator(apiKey, model, baseURL string, maxTokens int) (*ClaudeGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("claude: API key is required (set LLM_API_KEY)")
	}
	if model == "" {
		model = DefaultClaudeModel
	}
	if maxTokens <= 0 {
		maxTokens = DefaultClaudeMaxTokens
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &ClaudeGenerator{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: int64(maxTokens),
	}, nil
}

// ModelName returns the chat model identifier.
func (c *ClaudeGenerator) ModelName() string {
	return c.model
}

// Complete sends the user turn with the persona as system prompt.
func (c *ClaudeGenerator) Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}
	if systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("claude messages: %w", err)
	}

	var sb strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
