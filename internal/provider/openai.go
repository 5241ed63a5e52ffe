package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// DefaultOpenAIModel is used when no model is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

// chatClient is the minimal surface needed from the OpenAI SDK, kept as an
// interface so tests can substitute a stub.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// OpenAI is the last backend in the chain, gated on an API key and skipped
// when unconfigured.
type OpenAI struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration

	client chatClient
}

func (p *OpenAI) Name() string { return "openai" }

func (p *OpenAI) Generate(ctx context.Context, prompt, system string) (string, error) {
	if strings.TrimSpace(p.APIKey) == "" {
		return "", ErrNotConfigured
	}
	model := p.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultHostedTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := p.ensureClient().CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
		N:           1,
	})
	if err != nil {
		return "", fmt.Errorf("openai call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (p *OpenAI) ensureClient() chatClient {
	if p.client != nil {
		return p.client
	}
	cfg := openai.DefaultConfig(p.APIKey)
	if p.BaseURL != "" {
		cfg.BaseURL = p.BaseURL
	}
	p.client = openai.NewClientWithConfig(cfg)
	return p.client
}
