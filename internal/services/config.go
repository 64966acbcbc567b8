package services

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Lllllllleong/pdfinsight/internal/analysis"
	"github.com/Lllllllleong/pdfinsight/internal/gcp"
	"github.com/joho/godotenv"
)

// Model providers selectable for summarization and sentiment scoring.
const (
	ProviderHuggingFace = "huggingface"
	ProviderVertex      = "vertex"
	ProviderOpenAI      = "openai"
	ProviderAnthropic   = "anthropic"
	ProviderOllama      = "ollama"
)

// AnalyzerConfig holds all configuration for the analyzer service.
type AnalyzerConfig struct {
	ProjectID      string
	VertexAIRegion string

	SummarizerProvider string
	SentimentProvider  string
	SummarizerModel    string
	SentimentModel     string

	HFToken          string
	HFBaseURL        string
	OpenAIAPIKey     string
	OpenAIBaseURL    string
	AnthropicAPIKey  string
	AnthropicBaseURL string

	TopWords           int
	DefaultSummaryType analysis.SummaryMode
	SectionConcurrency int
	ModelTimeout       time.Duration
	GCSInputEnabled    bool
}

// loadConfig loads and validates all environment variables for the analyzer.
// Values from a .env file in the working directory are used for variables
// not already set.
func loadConfig() (*AnalyzerConfig, error) {
	if err := godotenv.Load(); err == nil {
		slog.Debug("Loaded environment from .env file.")
	}

	topWords, err := gcp.GetEnvInt("TOP_WORDS", analysis.DefaultTopWords)
	if err != nil {
		return nil, err
	}
	concurrency, err := gcp.GetEnvInt("SUMMARY_SECTION_CONCURRENCY", 1)
	if err != nil {
		return nil, err
	}
	timeoutSeconds, err := gcp.GetEnvInt("MODEL_TIMEOUT_SECONDS", 120)
	if err != nil {
		return nil, err
	}
	gcsEnabled, err := gcp.GetEnvBool("GCS_INPUT_ENABLED", true)
	if err != nil {
		return nil, err
	}

	config := &AnalyzerConfig{
		ProjectID:          gcp.GetEnv("PROJECT_ID", ""),
		VertexAIRegion:     gcp.GetEnv("VERTEX_AI_REGION", "us-central1"),
		SummarizerProvider: strings.ToLower(strings.TrimSpace(gcp.GetEnv("SUMMARIZER_PROVIDER", ProviderHuggingFace))),
		SentimentProvider:  strings.ToLower(strings.TrimSpace(gcp.GetEnv("SENTIMENT_PROVIDER", ProviderHuggingFace))),
		SummarizerModel:    gcp.GetEnv("SUMMARIZER_MODEL", ""),
		SentimentModel:     gcp.GetEnv("SENTIMENT_MODEL", ""),
		HFToken:            gcp.GetEnv("HF_API_TOKEN", ""),
		HFBaseURL:          gcp.GetEnv("HF_BASE_URL", ""),
		OpenAIAPIKey:       gcp.GetEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:      gcp.GetEnv("OPENAI_BASE_URL", ""),
		AnthropicAPIKey:    gcp.GetEnv("ANTHROPIC_API_KEY", ""),
		AnthropicBaseURL:   gcp.GetEnv("ANTHROPIC_BASE_URL", ""),
		TopWords:           topWords,
		DefaultSummaryType: analysis.SummaryMode(gcp.GetEnv("DEFAULT_SUMMARY_TYPE", string(analysis.QuickSummary))),
		SectionConcurrency: concurrency,
		ModelTimeout:       time.Duration(timeoutSeconds) * time.Second,
		GCSInputEnabled:    gcsEnabled,
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *AnalyzerConfig) validate() error {
	for name, provider := range map[string]string{
		"SUMMARIZER_PROVIDER": c.SummarizerProvider,
		"SENTIMENT_PROVIDER":  c.SentimentProvider,
	} {
		switch provider {
		case ProviderHuggingFace, ProviderVertex, ProviderOpenAI, ProviderAnthropic, ProviderOllama:
		default:
			return fmt.Errorf("%s must be one of huggingface, vertex, openai, anthropic, ollama; got %q", name, provider)
		}
	}
	if (c.SummarizerProvider == ProviderVertex || c.SentimentProvider == ProviderVertex) && c.ProjectID == "" {
		return fmt.Errorf("PROJECT_ID environment variable must be set for the vertex provider")
	}
	if c.TopWords < 1 {
		return fmt.Errorf("TOP_WORDS must be at least 1, got %d", c.TopWords)
	}
	if c.SectionConcurrency < 1 {
		return fmt.Errorf("SUMMARY_SECTION_CONCURRENCY must be at least 1, got %d", c.SectionConcurrency)
	}
	if c.ModelTimeout <= 0 {
		return fmt.Errorf("MODEL_TIMEOUT_SECONDS must be positive")
	}
	if !c.DefaultSummaryType.Valid() {
		return fmt.Errorf("DEFAULT_SUMMARY_TYPE %q is not a summary type", c.DefaultSummaryType)
	}
	return nil
}
