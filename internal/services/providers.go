package services

import (
	"context"
	"fmt"

	"github.com/Lllllllleong/pdfinsight/internal/analysis"
	"github.com/Lllllllleong/pdfinsight/internal/gcp"
	"github.com/Lllllllleong/pdfinsight/internal/inference"
)

// backend is a model client that can both summarize and classify.
type backend interface {
	analysis.Summarizer
	analysis.Classifier
}

// modelSet is the summarizer and classifier chosen by configuration.
type modelSet struct {
	summarizer   analysis.Summarizer
	classifier   analysis.Classifier
	vertexClient *gcp.VertexClient
}

// buildModels constructs the configured backends. A Vertex client is shared
// when both roles use Gemini.
func buildModels(ctx context.Context, config *AnalyzerConfig) (*modelSet, error) {
	set := &modelSet{}

	summarizer, err := set.backendFor(ctx, config, config.SummarizerProvider, config.SummarizerModel, "")
	if err != nil {
		return nil, fmt.Errorf("failed to create summarizer: %w", err)
	}
	classifier, err := set.backendFor(ctx, config, config.SentimentProvider, "", config.SentimentModel)
	if err != nil {
		set.Close()
		return nil, fmt.Errorf("failed to create sentiment classifier: %w", err)
	}

	set.summarizer = summarizer
	set.classifier = classifier
	return set, nil
}

func (s *modelSet) backendFor(ctx context.Context, config *AnalyzerConfig, provider, summarizerModel, sentimentModel string) (backend, error) {
	model := summarizerModel
	if model == "" {
		model = sentimentModel
	}

	switch provider {
	case ProviderHuggingFace:
		return inference.NewHuggingFaceClient(inference.HuggingFaceConfig{
			BaseURL:         config.HFBaseURL,
			Token:           config.HFToken,
			SummarizerModel: summarizerModel,
			SentimentModel:  sentimentModel,
			Timeout:         config.ModelTimeout,
		}), nil
	case ProviderVertex:
		if s.vertexClient == nil {
			sentiment := config.SentimentModel
			if config.SentimentProvider != ProviderVertex {
				sentiment = ""
			}
			summary := config.SummarizerModel
			if config.SummarizerProvider != ProviderVertex {
				summary = ""
			}
			client, err := gcp.NewVertexClient(ctx, config.ProjectID, config.VertexAIRegion, summary, sentiment)
			if err != nil {
				return nil, err
			}
			s.vertexClient = client
		}
		return s.vertexClient, nil
	case ProviderOpenAI:
		return inference.NewOpenAIClient(inference.LLMConfig{
			APIKey:   config.OpenAIAPIKey,
			Endpoint: config.OpenAIBaseURL,
			Model:    model,
		})
	case ProviderAnthropic:
		return inference.NewAnthropicClient(inference.LLMConfig{
			APIKey:   config.AnthropicAPIKey,
			Endpoint: config.AnthropicBaseURL,
			Model:    model,
		})
	case ProviderOllama:
		return inference.NewOllamaClient(model)
	}
	return nil, fmt.Errorf("unknown model provider %q", provider)
}

func (s *modelSet) Close() error {
	if s.vertexClient != nil {
		return s.vertexClient.Close()
	}
	return nil
}
