package inference

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Lllllllleong/pdfinsight/internal/analysis"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const DefaultAnthropicModel = "claude-haiku-4-5-20251001"

// AnthropicClient summarizes and classifies with a Claude model.
type AnthropicClient struct {
	client anthropic.Client
	model  string
}

func NewAnthropicClient(cfg LLMConfig) (*AnthropicClient, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY must be set for the anthropic provider")
	}
	modelID := strings.TrimSpace(cfg.Model)
	if modelID == "" {
		modelID = DefaultAnthropicModel
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if endpoint := strings.TrimSpace(cfg.Endpoint); endpoint != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(endpoint, "/")))
	}

	return &AnthropicClient{client: anthropic.NewClient(opts...), model: modelID}, nil
}

func (c *AnthropicClient) Summarize(ctx context.Context, text string, opts analysis.SummaryOptions) (string, error) {
	raw, err := c.generate(ctx, SummarizerSystemPrompt, SummaryPrompt(text, opts), opts.MaxLength, opts.Sample)
	if err != nil {
		return "", err
	}
	return cleanSummary(raw), nil
}

func (c *AnthropicClient) Classify(ctx context.Context, text string) ([]analysis.Classification, error) {
	raw, err := c.generate(ctx, SentimentSystemPrompt, SentimentPrompt(text), sentimentMaxTokens, false)
	if err != nil {
		return nil, err
	}
	return ParseClassification(raw)
}

func (c *AnthropicClient) generate(ctx context.Context, systemPrompt, prompt string, maxTokens int, sample bool) (string, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(maxTokens),
		System:    []anthropic.TextBlockParam{{Text: systemPrompt}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	}
	if !sample {
		params.Temperature = anthropic.Float(0)
	}

	msg, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("anthropic generation failed: %w", err)
	}

	var full strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			full.WriteString(block.Text)
		}
	}
	if strings.TrimSpace(full.String()) == "" {
		return "", errors.New("empty response from anthropic")
	}
	return full.String(), nil
}
