package analysis

import (
	"context"
	"log/slog"
)

// NoReadableTextMessage is shown when extraction yields no text.
const NoReadableTextMessage = "No readable text found in the uploaded PDF. Please try a different file."

// Report is the outcome of analyzing one document.
type Report struct {
	// Empty is set when the document has no readable text. All other
	// fields are zero in that case.
	Empty        bool
	Text         string
	TopWords     []WordCount
	TopWordsText string
	Sentiment    Sentiment
	Summary      SummaryResult
}

// Pipeline runs extraction, ranking, sentiment scoring and summarization in
// that order. The models are built once by the caller and shared across runs.
type Pipeline struct {
	classifier Classifier
	dispatcher *Dispatcher
	topN       int
}

// NewPipeline wires the models into a pipeline.
func NewPipeline(summarizer Summarizer, classifier Classifier, topN, sectionConcurrency int) *Pipeline {
	if topN <= 0 {
		topN = DefaultTopWords
	}
	return &Pipeline{
		classifier: classifier,
		dispatcher: NewDispatcher(summarizer, sectionConcurrency),
		topN:       topN,
	}
}

// TopN is the default number of ranked words.
func (p *Pipeline) TopN() int { return p.topN }

// Run analyzes src. topN overrides the pipeline default when positive.
// Extraction and sentiment failures are returned as errors; summarization
// failures are reported inside the summary text.
func (p *Pipeline) Run(ctx context.Context, logCtx *slog.Logger, src PageSource, mode SummaryMode, topN int) (*Report, error) {
	normalized, err := ExtractText(src)
	if err != nil {
		logCtx.Error("Text extraction failed", "error", err)
		return nil, err
	}

	doc, ok := NewDocumentText(normalized)
	if !ok {
		logCtx.Warn("Document has no readable text.", "pageCount", src.NumPages())
		return &Report{Empty: true}, nil
	}
	return p.Analyze(ctx, logCtx, doc, mode, topN)
}

// Analyze runs the stages after extraction on non-empty text.
func (p *Pipeline) Analyze(ctx context.Context, logCtx *slog.Logger, doc DocumentText, mode SummaryMode, topN int) (*Report, error) {
	if topN <= 0 {
		topN = p.topN
	}
	text := doc.String()
	logCtx.Info("Text extracted.", "characters", len(text))

	words, wordsText := RankWords(text, topN)
	logCtx.Info("Top words calculated.", "topWords", wordsText)

	sentiment, err := ScoreSentiment(ctx, p.classifier, text)
	if err != nil {
		logCtx.Error("Sentiment analysis failed", "error", err)
		return nil, err
	}
	logCtx.Info("Sentiment analyzed.", "label", sentiment.Label, "score", sentiment.RoundedScore())

	summary := p.dispatcher.Summarize(ctx, text, mode)
	if summary.Err != nil {
		logCtx.Warn("Summarization failed; reporting error text instead.", "mode", string(mode), "error", summary.Err)
	} else {
		logCtx.Info("Summary generated.", "mode", string(mode), "characters", len(summary.Text))
	}

	return &Report{
		Text:         text,
		TopWords:     words,
		TopWordsText: wordsText,
		Sentiment:    sentiment,
		Summary:      summary,
	}, nil
}
