package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Lllllllleong/pdfinsight/internal/analysis"
)

type fakeDocument struct {
	pages  []string
	closed bool
}

func (d *fakeDocument) NumPages() int { return len(d.pages) }

func (d *fakeDocument) PageText(n int) (string, error) { return d.pages[n-1], nil }

func (d *fakeDocument) Close() error {
	d.closed = true
	return nil
}

type fakeSummarizer struct {
	calls []analysis.SummaryOptions
}

func (s *fakeSummarizer) Summarize(_ context.Context, text string, opts analysis.SummaryOptions) (string, error) {
	s.calls = append(s.calls, opts)
	return "summary: " + strings.Fields(text)[0], nil
}

type fakeClassifier struct {
	err error
	// hang blocks until the request context ends.
	hang bool
}

func (c *fakeClassifier) Classify(ctx context.Context, _ string) ([]analysis.Classification, error) {
	if c.hang {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if c.err != nil {
		return nil, c.err
	}
	return []analysis.Classification{{Label: "POSITIVE", Score: 0.987}, {Label: "NEGATIVE", Score: 0.013}}, nil
}

var errModelDown = errors.New("model endpoint unavailable")

func testConfig() AnalyzerConfig {
	return AnalyzerConfig{
		SummarizerProvider: ProviderHuggingFace,
		SentimentProvider:  ProviderHuggingFace,
		TopWords:           analysis.DefaultTopWords,
		DefaultSummaryType: analysis.QuickSummary,
		SectionConcurrency: 1,
		ModelTimeout:       5 * time.Second,
	}
}

// newTestAnalyzer returns an analyzer whose PDF opener serves doc.
func newTestAnalyzer(doc *fakeDocument, classifier *fakeClassifier) (*AnalyzerFunction, *fakeSummarizer) {
	summarizer := &fakeSummarizer{}
	f := newAnalyzer(testConfig(), summarizer, classifier, nil)
	f.openPDF = func(string) (pdfDocument, error) { return doc, nil }
	return f, summarizer
}
