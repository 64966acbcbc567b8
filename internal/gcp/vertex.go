package gcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"github.com/Lllllllleong/pdfinsight/internal/analysis"
	"github.com/Lllllllleong/pdfinsight/internal/inference"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// VertexClient holds the pre-configured Gemini models used for analysis.
type VertexClient struct {
	SummarizerModel *genai.GenerativeModel
	SentimentModel  *genai.GenerativeModel
	baseClient      *genai.Client
}

// NewVertexClient creates a client holding the summarizer and sentiment
// models. Empty model names fall back to DefaultGeminiModel.
func NewVertexClient(ctx context.Context, projectID, region, summarizerModel, sentimentModel string) (*VertexClient, error) {
	if projectID == "" || region == "" {
		return nil, fmt.Errorf("NewVertexClient: projectID and region cannot be empty")
	}

	baseClient, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, fmt.Errorf("genai.NewClient: %w", err)
	}

	if summarizerModel == "" {
		summarizerModel = DefaultGeminiModel
	}
	if sentimentModel == "" {
		sentimentModel = DefaultGeminiModel
	}

	// --- Configure the summarizer model ---
	summarizer := baseClient.GenerativeModel(summarizerModel)
	summarizer.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(inference.SummarizerSystemPrompt)},
	}
	summarizer.GenerationConfig = genai.GenerationConfig{
		Temperature: genai.Ptr[float32](0.0),
	}

	// --- Configure the sentiment model ---
	sentiment := baseClient.GenerativeModel(sentimentModel)
	sentiment.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(inference.SentimentSystemPrompt)},
	}
	sentiment.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"label": {Type: genai.TypeString, Enum: []string{"POSITIVE", "NEGATIVE"}},
				"score": {Type: genai.TypeNumber},
			},
			Required: []string{"label", "score"},
		},
		Temperature: genai.Ptr[float32](0.0),
	}

	return &VertexClient{
		SummarizerModel: summarizer,
		SentimentModel:  sentiment,
		baseClient:      baseClient,
	}, nil
}

// Summarize asks the summarizer model for a summary within the bounds of opts.
func (c *VertexClient) Summarize(ctx context.Context, text string, opts analysis.SummaryOptions) (string, error) {
	// Copy so per-call settings do not leak between concurrent requests.
	model := *c.SummarizerModel
	model.SetMaxOutputTokens(int32(opts.MaxLength))
	if opts.Sample {
		model.Temperature = nil
	}

	resp, err := model.GenerateContent(ctx, genai.Text(inference.SummaryPrompt(text, opts)))
	if err != nil {
		return "", fmt.Errorf("gemini summarization failed: %w", err)
	}
	raw, err := responseText(resp)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// Classify asks the sentiment model for a JSON label and score.
func (c *VertexClient) Classify(ctx context.Context, text string) ([]analysis.Classification, error) {
	resp, err := c.SentimentModel.GenerateContent(ctx, genai.Text(inference.SentimentPrompt(text)))
	if err != nil {
		return nil, fmt.Errorf("gemini classification failed: %w", err)
	}
	raw, err := responseText(resp)
	if err != nil {
		return nil, err
	}
	return inference.ParseClassification(raw)
}

func (c *VertexClient) Close() error {
	if c.baseClient != nil {
		return c.baseClient.Close()
	}
	return nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("empty response from gemini")
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", errors.New("gemini response contained no text")
	}
	return sb.String(), nil
}
