package services

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/Lllllllleong/pdfinsight/internal/analysis"
	"github.com/Lllllllleong/pdfinsight/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessEventSkipsNonPDF(t *testing.T) {
	f, summarizer := newTestAnalyzer(&fakeDocument{pages: []string{reportPage}}, &fakeClassifier{})

	res, err := f.ProcessEvent(t.Context(), GCSEvent{Bucket: "uploads", Name: "notes/readme.txt", ContentType: "text/plain"})

	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Empty(t, summarizer.calls)
}

func TestProcessEventRequiresGCS(t *testing.T) {
	f, _ := newTestAnalyzer(&fakeDocument{pages: []string{reportPage}}, &fakeClassifier{})

	_, err := f.ProcessEvent(t.Context(), GCSEvent{Bucket: "uploads", Name: "reports/Q3.PDF"})

	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestIsPDFObject(t *testing.T) {
	assert.True(t, isPDFObject(GCSEvent{Name: "a/b.pdf"}))
	assert.True(t, isPDFObject(GCSEvent{Name: "a/B.PDF"}))
	assert.True(t, isPDFObject(GCSEvent{Name: "scan", ContentType: "application/pdf"}))
	assert.False(t, isPDFObject(GCSEvent{Name: "a/b.docx", ContentType: "application/msword"}))
}

func TestBuildResponseSectionSummary(t *testing.T) {
	report := &analysis.Report{
		TopWords:     []analysis.WordCount{{Word: "bridge", Count: 3}},
		TopWordsText: "bridge (3)",
		Sentiment:    analysis.Sentiment{Label: "NEGATIVE", Score: 0.5049},
		Summary:      analysis.SummaryResult{Mode: analysis.SectionSummary, Text: "Section 1: summary"},
	}
	document := &models.DocumentInfo{Filename: "a.pdf", PageCount: 1}

	res := buildResponse(document, report, 1)

	assert.Equal(t, models.StatusSuccess, res.Status)
	assert.Same(t, document, res.Document)
	assert.Equal(t, "Top 1 Frequent Words", res.Chart.Title)
	assert.Equal(t, []string{"bridge"}, res.Chart.Labels)
	assert.Equal(t, []int{3}, res.Chart.Values)
	assert.Equal(t, 0.5, res.Sentiment.Score)
	assert.Equal(t, "Label: NEGATIVE, Score: 0.50", res.Sentiment.Text)
	assert.Equal(t, "Section-Specific Summary:", res.Summary.Heading)
	assert.Equal(t, string(analysis.SectionSummary), res.Summary.Type)
}

func TestBuildResponseEmpty(t *testing.T) {
	res := buildResponse(&models.DocumentInfo{Filename: "blank.pdf"}, &analysis.Report{Empty: true}, 5)

	assert.Equal(t, models.StatusEmpty, res.Status)
	assert.Equal(t, analysis.NoReadableTextMessage, res.Message)
	assert.Nil(t, res.Chart)
	assert.Nil(t, res.TopWords)
}

func TestModelTimeoutFailsSlowSentiment(t *testing.T) {
	f, _ := newTestAnalyzer(&fakeDocument{pages: []string{reportPage}}, &fakeClassifier{hang: true})
	f.config.ModelTimeout = 20 * time.Millisecond

	_, err := f.ProcessUpload(t.Context(), "slow.pdf", strings.NewReader("pdf"), "Quick Summary", 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, http.StatusInternalServerError, statusFor(err))
}
