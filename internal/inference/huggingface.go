package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/Lllllllleong/pdfinsight/internal/analysis"
)

const (
	DefaultHuggingFaceURL            = "https://router.huggingface.co/hf-inference"
	DefaultHuggingFaceSummarizer     = "facebook/bart-large-cnn"
	DefaultHuggingFaceSentimentModel = "distilbert-base-uncased-finetuned-sst-2-english"
)

// HuggingFaceConfig configures the Hugging Face inference client.
type HuggingFaceConfig struct {
	BaseURL         string
	Token           string
	SummarizerModel string
	SentimentModel  string
	Timeout         time.Duration
}

// HuggingFaceClient runs the summarization and text-classification
// pipelines of hosted Hugging Face models.
type HuggingFaceClient struct {
	baseURL         string
	token           string
	summarizerModel string
	sentimentModel  string
	httpClient      *http.Client
}

// NewHuggingFaceClient creates a client, filling unset fields with defaults.
func NewHuggingFaceClient(cfg HuggingFaceConfig) *HuggingFaceClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultHuggingFaceURL
	}
	if cfg.SummarizerModel == "" {
		cfg.SummarizerModel = DefaultHuggingFaceSummarizer
	}
	if cfg.SentimentModel == "" {
		cfg.SentimentModel = DefaultHuggingFaceSentimentModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &HuggingFaceClient{
		baseURL:         strings.TrimRight(cfg.BaseURL, "/"),
		token:           cfg.Token,
		summarizerModel: cfg.SummarizerModel,
		sentimentModel:  cfg.SentimentModel,
		httpClient:      &http.Client{Timeout: cfg.Timeout},
	}
}

type hfRequest struct {
	Inputs     string         `json:"inputs"`
	Parameters map[string]any `json:"parameters,omitempty"`
	Options    map[string]any `json:"options,omitempty"`
}

type hfSummary struct {
	SummaryText string `json:"summary_text"`
}

// Summarize calls the summarization pipeline with the length bounds of opts.
func (c *HuggingFaceClient) Summarize(ctx context.Context, text string, opts analysis.SummaryOptions) (string, error) {
	req := hfRequest{
		Inputs: text,
		Parameters: map[string]any{
			"min_length": opts.MinLength,
			"max_length": opts.MaxLength,
			"do_sample":  opts.Sample,
		},
		Options: map[string]any{"wait_for_model": true},
	}

	body, err := c.post(ctx, c.summarizerModel, req)
	if err != nil {
		return "", err
	}

	var summaries []hfSummary
	if err := json.Unmarshal(body, &summaries); err != nil {
		return "", fmt.Errorf("failed to decode summarization response: %w", err)
	}
	if len(summaries) == 0 {
		return "", errors.New("summarization response contained no summary")
	}
	return strings.TrimSpace(summaries[0].SummaryText), nil
}

// Classify calls the text-classification pipeline. Labels are ordered by
// score, highest first.
func (c *HuggingFaceClient) Classify(ctx context.Context, text string) ([]analysis.Classification, error) {
	req := hfRequest{
		Inputs:  text,
		Options: map[string]any{"wait_for_model": true},
	}

	body, err := c.post(ctx, c.sentimentModel, req)
	if err != nil {
		return nil, err
	}

	// The API nests results per input; a single input may also come back flat.
	var nested [][]analysis.Classification
	var results []analysis.Classification
	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) > 0 {
			results = nested[0]
		}
	} else if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("failed to decode classification response: %w", err)
	}
	if len(results) == 0 {
		return nil, analysis.ErrNoClassification
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results, nil
}

func (c *HuggingFaceClient) post(ctx context.Context, model string, payload hfRequest) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/models/"+model, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("hugging face request for %s failed: %w", model, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", model, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return nil, fmt.Errorf("hugging face error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return nil, fmt.Errorf("hugging face error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return body, nil
}
