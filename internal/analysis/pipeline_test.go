package analysis

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPipelineEmptyDocumentSkipsStages(t *testing.T) {
	s := &fakeSummarizer{}
	c := &fakeClassifier{}
	p := NewPipeline(s, c, 5, 1)

	report, err := p.Run(context.Background(), discardLogger(), &fakePages{pages: []string{"", "  \n"}}, QuickSummary, 0)

	require.NoError(t, err)
	assert.True(t, report.Empty)
	assert.Empty(t, report.TopWords)
	assert.Empty(t, s.calls)
	assert.Empty(t, c.inputs)
}

func TestPipelineRun(t *testing.T) {
	s := &fakeSummarizer{}
	c := &fakeClassifier{results: []Classification{{Label: "POSITIVE", Score: 0.9}}}
	p := NewPipeline(s, c, 5, 1)
	src := &fakePages{pages: []string{"cat dog cat bird", "cat dog fish"}}

	report, err := p.Run(context.Background(), discardLogger(), src, QuickSummary, 0)

	require.NoError(t, err)
	assert.False(t, report.Empty)
	assert.Equal(t, "cat dog cat bird cat dog fish", report.Text)
	assert.Equal(t, []WordCount{{"cat", 3}, {"dog", 2}, {"bird", 1}, {"fish", 1}}, report.TopWords)
	assert.Equal(t, "cat (3), dog (2), bird (1), fish (1)", report.TopWordsText)
	assert.Equal(t, "POSITIVE", report.Sentiment.Label)
	assert.Equal(t, "summary of cat", report.Summary.Text)
}

func TestPipelineTopNOverride(t *testing.T) {
	p := NewPipeline(&fakeSummarizer{}, &fakeClassifier{results: []Classification{{Label: "NEGATIVE", Score: 0.7}}}, 5, 1)

	report, err := p.Run(context.Background(), discardLogger(), &fakePages{pages: []string{"cat dog cat bird"}}, QuickSummary, 1)

	require.NoError(t, err)
	assert.Equal(t, []WordCount{{"cat", 2}}, report.TopWords)
}

func TestPipelineSentimentFailureIsFatal(t *testing.T) {
	boom := errors.New("classifier offline")
	s := &fakeSummarizer{}
	p := NewPipeline(s, &fakeClassifier{err: boom}, 5, 1)

	_, err := p.Run(context.Background(), discardLogger(), &fakePages{pages: []string{"some text"}}, QuickSummary, 0)

	assert.ErrorIs(t, err, boom)
	assert.Empty(t, s.calls)
}

func TestPipelineSummaryFailureKeepsReport(t *testing.T) {
	s := &fakeSummarizer{err: errors.New("timeout")}
	p := NewPipeline(s, &fakeClassifier{results: []Classification{{Label: "POSITIVE", Score: 0.9}}}, 5, 1)

	report, err := p.Run(context.Background(), discardLogger(), &fakePages{pages: []string{"cat dog"}}, DetailedSummary, 0)

	require.NoError(t, err)
	assert.Equal(t, "An error occurred during summarization: timeout", report.Summary.Text)
	assert.Equal(t, "POSITIVE", report.Sentiment.Label)
	assert.Len(t, report.TopWords, 2)
}

func TestPipelineExtractionFailure(t *testing.T) {
	boom := errors.New("corrupt page")
	p := NewPipeline(&fakeSummarizer{}, &fakeClassifier{}, 5, 1)

	_, err := p.Run(context.Background(), discardLogger(), &fakePages{pages: []string{"x"}, err: boom, errAt: 1}, QuickSummary, 0)

	assert.ErrorIs(t, err, boom)
}
