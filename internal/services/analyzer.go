package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/Lllllllleong/pdfinsight/internal/analysis"
	"github.com/Lllllllleong/pdfinsight/internal/gcp"
	"github.com/Lllllllleong/pdfinsight/internal/models"
	"github.com/Lllllllleong/pdfinsight/internal/pdftext"
)

// ErrBadRequest marks requests that are malformed independently of the
// document they name.
var ErrBadRequest = errors.New("bad request")

// pdfDocument is an opened PDF ready for text extraction.
type pdfDocument interface {
	analysis.PageSource
	Close() error
}

// AnalyzerFunction holds the dependencies for document analysis.
type AnalyzerFunction struct {
	storageClient *storage.Client
	models        *modelSet
	pipeline      *analysis.Pipeline
	config        AnalyzerConfig
	openPDF       func(path string) (pdfDocument, error)
}

// GCSEvent is the payload of a Cloud Storage object-finalized event.
type GCSEvent struct {
	Bucket      string `json:"bucket"`
	Name        string `json:"name"`
	ContentType string `json:"contentType"`
}

// NewAnalyzer creates a new AnalyzerFunction instance from the environment.
func NewAnalyzer(ctx context.Context) (*AnalyzerFunction, error) {
	config, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	set, err := buildModels(ctx, config)
	if err != nil {
		return nil, err
	}

	var storageClient *storage.Client
	if config.GCSInputEnabled {
		storageClient, err = storage.NewClient(ctx)
		if err != nil {
			set.Close()
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
	}

	f := newAnalyzer(*config, set.summarizer, set.classifier, storageClient)
	f.models = set
	slog.Info("Document analyzer initialized.",
		"summarizerProvider", config.SummarizerProvider,
		"sentimentProvider", config.SentimentProvider,
		"defaultSummaryType", string(config.DefaultSummaryType),
		"gcsInputEnabled", config.GCSInputEnabled,
	)
	return f, nil
}

func newAnalyzer(config AnalyzerConfig, summarizer analysis.Summarizer, classifier analysis.Classifier, storageClient *storage.Client) *AnalyzerFunction {
	return &AnalyzerFunction{
		storageClient: storageClient,
		pipeline:      analysis.NewPipeline(summarizer, classifier, config.TopWords, config.SectionConcurrency),
		config:        config,
		openPDF: func(path string) (pdfDocument, error) {
			return pdftext.Open(path)
		},
	}
}

// Close releases the model and storage clients.
func (f *AnalyzerFunction) Close() error {
	var errs []error
	if f.models != nil {
		errs = append(errs, f.models.Close())
	}
	if f.storageClient != nil {
		errs = append(errs, f.storageClient.Close())
	}
	return errors.Join(errs...)
}

// ProcessUpload analyzes a PDF received in the request body.
func (f *AnalyzerFunction) ProcessUpload(ctx context.Context, filename string, content io.Reader, summaryType string, topN int) (*models.AnalyzeResponse, error) {
	logCtx := slog.With("filename", filename, "summaryType", summaryType)
	logCtx.Info("Processing uploaded document.")

	return f.withTempFile(ctx, logCtx, "document-analyzer-*", func(sourcePath string) error {
		localFile, err := os.Create(sourcePath)
		if err != nil {
			return fmt.Errorf("failed to create temp file at %s: %w", sourcePath, err)
		}
		defer localFile.Close()
		if _, err := io.Copy(localFile, content); err != nil {
			return fmt.Errorf("failed to store uploaded file: %w", err)
		}
		return nil
	}, filename, summaryType, topN)
}

// Process analyzes the GCS object named by req.GCSUri.
func (f *AnalyzerFunction) Process(ctx context.Context, req *models.AnalyzeRequest) (*models.AnalyzeResponse, error) {
	if !f.config.GCSInputEnabled || f.storageClient == nil {
		return nil, fmt.Errorf("%w: GCS input is disabled", ErrBadRequest)
	}
	bucket, object, err := gcp.ParseGCSURI(req.GCSUri)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	logCtx := slog.With("gcsBucket", bucket, "gcsObject", object, "summaryType", req.SummaryType)
	logCtx.Info("Processing GCS document.")

	return f.withTempFile(ctx, logCtx, "document-analyzer-*", func(sourcePath string) error {
		return gcp.StreamObjectToFile(ctx, f.storageClient, bucket, object, sourcePath)
	}, path.Base(object), req.SummaryType, req.TopN)
}

// ProcessEvent analyzes the object of a GCS finalize event with the default
// summary type. Objects that are not PDFs are skipped and yield a nil response.
func (f *AnalyzerFunction) ProcessEvent(ctx context.Context, e GCSEvent) (*models.AnalyzeResponse, error) {
	logCtx := slog.With("gcsBucket", e.Bucket, "gcsObject", e.Name)
	if !isPDFObject(e) {
		logCtx.Info("Object is not a PDF. Skipping.", "contentType", e.ContentType)
		return nil, nil
	}
	return f.Process(ctx, &models.AnalyzeRequest{
		GCSUri:      fmt.Sprintf("gs://%s/%s", e.Bucket, e.Name),
		SummaryType: string(f.config.DefaultSummaryType),
	})
}

func isPDFObject(e GCSEvent) bool {
	if strings.EqualFold(filepath.Ext(e.Name), ".pdf") {
		return true
	}
	return e.ContentType == "application/pdf"
}

// withTempFile fetches the document into a temp directory with fetch and
// analyzes it. The directory is removed afterwards.
func (f *AnalyzerFunction) withTempFile(ctx context.Context, logCtx *slog.Logger, pattern string, fetch func(path string) error, filename, summaryType string, topN int) (*models.AnalyzeResponse, error) {
	if topN < 0 {
		return nil, fmt.Errorf("%w: topN must not be negative", ErrBadRequest)
	}

	tempDir, err := os.MkdirTemp("", pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tempDir)

	sourcePdfPath := filepath.Join(tempDir, "source.pdf")
	if err := fetch(sourcePdfPath); err != nil {
		logCtx.Error("Failed to fetch source PDF", "error", err)
		return nil, err
	}
	return f.analyzeFile(ctx, logCtx, sourcePdfPath, filename, f.summaryMode(summaryType), topN)
}

func (f *AnalyzerFunction) summaryMode(summaryType string) analysis.SummaryMode {
	if strings.TrimSpace(summaryType) == "" {
		return f.config.DefaultSummaryType
	}
	return analysis.SummaryMode(summaryType)
}

func (f *AnalyzerFunction) analyzeFile(ctx context.Context, logCtx *slog.Logger, sourcePath, filename string, mode analysis.SummaryMode, topN int) (*models.AnalyzeResponse, error) {
	info, err := os.Stat(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat source PDF: %w", err)
	}
	fileHash, err := calculateFileHash(sourcePath)
	if err != nil {
		logCtx.Error("Failed to calculate file hash", "error", err)
		return nil, fmt.Errorf("failed to calculate file hash: %w", err)
	}
	logCtx = logCtx.With("fileHash", fileHash)

	doc, err := f.openPDF(sourcePath)
	if err != nil {
		logCtx.Warn("Rejected unreadable PDF", "error", err)
		return nil, err
	}
	defer doc.Close()

	document := &models.DocumentInfo{
		Filename:  filename,
		FileHash:  fileHash,
		SizeBytes: info.Size(),
		PageCount: doc.NumPages(),
	}
	logCtx.Info("PDF opened.", "pageCount", document.PageCount, "sizeBytes", document.SizeBytes)

	runCtx, cancel := context.WithTimeout(ctx, f.config.ModelTimeout)
	defer cancel()

	report, err := f.pipeline.Run(runCtx, logCtx, doc, mode, topN)
	if err != nil {
		return nil, err
	}
	if topN <= 0 {
		topN = f.pipeline.TopN()
	}
	resp := buildResponse(document, report, topN)
	logCtx.Info("Document analyzed.", "status", resp.Status)
	return resp, nil
}

// buildResponse turns a report into the presentation view model.
func buildResponse(document *models.DocumentInfo, report *analysis.Report, topN int) *models.AnalyzeResponse {
	if report.Empty {
		return &models.AnalyzeResponse{
			Status:   models.StatusEmpty,
			Message:  analysis.NoReadableTextMessage,
			Document: document,
		}
	}

	chart := &models.BarChart{
		Title:  fmt.Sprintf("Top %d Frequent Words", topN),
		XLabel: "Words",
		YLabel: "Frequency",
		Labels: make([]string, 0, len(report.TopWords)),
		Values: make([]int, 0, len(report.TopWords)),
	}
	words := make([]models.WordFrequency, 0, len(report.TopWords))
	for _, wc := range report.TopWords {
		words = append(words, models.WordFrequency{Word: wc.Word, Count: wc.Count})
		chart.Labels = append(chart.Labels, wc.Word)
		chart.Values = append(chart.Values, wc.Count)
	}

	return &models.AnalyzeResponse{
		Status:       models.StatusSuccess,
		Document:     document,
		TopWords:     words,
		TopWordsText: report.TopWordsText,
		Chart:        chart,
		Sentiment: &models.SentimentView{
			Label: report.Sentiment.Label,
			Score: report.Sentiment.RoundedScore(),
			Text:  report.Sentiment.String(),
		},
		Summary: &models.SummaryView{
			Type:    string(report.Summary.Mode),
			Heading: report.Summary.Mode.Heading(),
			Text:    report.Summary.Text,
		},
	}
}

func calculateFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()
	hash := sha256.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}
	return hex.EncodeToString(hash.Sum(nil)), nil
}
