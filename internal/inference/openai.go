package inference

import (
	"context"
	"errors"
	"fmt"
	neturl "net/url"
	"strings"

	"github.com/Lllllllleong/pdfinsight/internal/analysis"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	jetai "go.jetify.com/ai"
	jetapi "go.jetify.com/ai/api"
	jetopenai "go.jetify.com/ai/provider/openai"
)

const DefaultOpenAIModel = "gpt-4o-mini"

// LLMConfig configures a chat-model backend.
type LLMConfig struct {
	APIKey   string
	Endpoint string
	Model    string
}

// OpenAIClient summarizes and classifies with an OpenAI chat model.
type OpenAIClient struct {
	model jetapi.LanguageModel
}

// NewOpenAIClient builds the language model once; it is shared by all requests.
func NewOpenAIClient(cfg LLMConfig) (*OpenAIClient, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, errors.New("OPENAI_API_KEY must be set for the openai provider")
	}
	modelID := strings.TrimSpace(cfg.Model)
	if modelID == "" {
		modelID = DefaultOpenAIModel
	}

	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(apiKey),
		openaioption.WithMaxRetries(0),
	}
	if normalized := normalizeOpenAIBaseURL(cfg.Endpoint); normalized != "" {
		opts = append(opts, openaioption.WithBaseURL(normalized))
	}

	client := openaiclient.NewClient(opts...)
	return &OpenAIClient{model: jetopenai.NewLanguageModel(modelID, jetopenai.WithClient(client))}, nil
}

func (c *OpenAIClient) Summarize(ctx context.Context, text string, opts analysis.SummaryOptions) (string, error) {
	raw, err := c.generate(ctx, SummarizerSystemPrompt, SummaryPrompt(text, opts), opts.MaxLength, opts.Sample)
	if err != nil {
		return "", err
	}
	return cleanSummary(raw), nil
}

func (c *OpenAIClient) Classify(ctx context.Context, text string) ([]analysis.Classification, error) {
	raw, err := c.generate(ctx, SentimentSystemPrompt, SentimentPrompt(text), sentimentMaxTokens, false)
	if err != nil {
		return nil, err
	}
	return ParseClassification(raw)
}

func (c *OpenAIClient) generate(ctx context.Context, systemPrompt, prompt string, maxTokens int, sample bool) (string, error) {
	messages := []jetapi.Message{
		&jetapi.SystemMessage{Content: systemPrompt},
		&jetapi.UserMessage{Content: jetapi.ContentFromText(prompt)},
	}
	opts := []jetai.GenerateOption{jetai.WithModel(c.model), jetai.WithMaxOutputTokens(maxTokens)}
	if !sample {
		opts = append(opts, jetai.WithTemperature(0))
	}
	resp, err := jetai.GenerateText(ctx, messages, opts...)
	if err != nil {
		return "", fmt.Errorf("openai generation failed: %w", err)
	}
	if resp == nil {
		return "", errors.New("empty response from openai")
	}

	var full strings.Builder
	for _, block := range resp.Content {
		textBlock, ok := block.(*jetapi.TextBlock)
		if !ok || textBlock.Text == "" {
			continue
		}
		full.WriteString(textBlock.Text)
	}
	if strings.TrimSpace(full.String()) == "" {
		return "", errors.New("empty response from openai")
	}
	return full.String(), nil
}

// normalizeOpenAIBaseURL makes sure a custom endpoint ends with /v1.
func normalizeOpenAIBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return ""
	}
	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.TrimRight(base, "/")
	}

	path := strings.TrimRight(parsed.Path, "/")
	if !strings.HasSuffix(path, "/v1") {
		path += "/v1"
	}
	parsed.Path = path
	return strings.TrimRight(parsed.String(), "/")
}
