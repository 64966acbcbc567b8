package inference

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Lllllllleong/pdfinsight/internal/analysis"
	ollama "github.com/ollama/ollama/api"
)

const DefaultOllamaModel = "llama3.2"

// OllamaClient runs local models through an Ollama server. The server
// address comes from OLLAMA_HOST.
type OllamaClient struct {
	client *ollama.Client
	model  string
}

func NewOllamaClient(model string) (*OllamaClient, error) {
	client, err := ollama.ClientFromEnvironment()
	if err != nil {
		return nil, fmt.Errorf("could not create ollama client: %w", err)
	}
	model = strings.TrimPrefix(strings.TrimSpace(model), "ollama:")
	if model == "" {
		model = DefaultOllamaModel
	}
	return &OllamaClient{client: client, model: model}, nil
}

func (c *OllamaClient) Summarize(ctx context.Context, text string, opts analysis.SummaryOptions) (string, error) {
	raw, err := c.chat(ctx, SummarizerSystemPrompt, SummaryPrompt(text, opts), opts.MaxLength, opts.Sample)
	if err != nil {
		return "", err
	}
	return cleanSummary(raw), nil
}

func (c *OllamaClient) Classify(ctx context.Context, text string) ([]analysis.Classification, error) {
	raw, err := c.chat(ctx, SentimentSystemPrompt, SentimentPrompt(text), sentimentMaxTokens, false)
	if err != nil {
		return nil, err
	}
	return ParseClassification(raw)
}

func (c *OllamaClient) chat(ctx context.Context, systemPrompt, prompt string, maxTokens int, sample bool) (string, error) {
	options := map[string]interface{}{
		"num_predict": maxTokens,
	}
	if !sample {
		options["temperature"] = 0
		options["seed"] = 42
	}

	req := &ollama.ChatRequest{
		Model: c.model,
		Messages: []ollama.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
		Options: options,
	}

	var out strings.Builder
	respFunc := func(res ollama.ChatResponse) error {
		out.WriteString(res.Message.Content)
		return nil
	}
	if err := c.client.Chat(ctx, req, respFunc); err != nil {
		return "", fmt.Errorf("ollama chat failed: %w", err)
	}
	if strings.TrimSpace(out.String()) == "" {
		return "", errors.New("empty response from ollama")
	}
	return out.String(), nil
}
