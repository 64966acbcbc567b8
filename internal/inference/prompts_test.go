package inference

import (
	"testing"

	"github.com/Lllllllleong/pdfinsight/internal/analysis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClassification(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		wantLabel string
		wantScore float64
	}{
		{name: "bare object", raw: `{"label": "POSITIVE", "score": 0.97}`, wantLabel: "POSITIVE", wantScore: 0.97},
		{name: "lowercase label", raw: `{"label": "negative", "score": 0.61}`, wantLabel: "NEGATIVE", wantScore: 0.61},
		{name: "fenced", raw: "```json\n{\"label\": \"POSITIVE\", \"score\": 0.9}\n```", wantLabel: "POSITIVE", wantScore: 0.9},
		{name: "array sorted by score", raw: `[{"label":"NEGATIVE","score":0.1},{"label":"POSITIVE","score":0.9}]`, wantLabel: "POSITIVE", wantScore: 0.9},
		{name: "surrounding prose", raw: `Sure. {"label": "NEGATIVE", "score": 0.8} Hope that helps.`, wantLabel: "NEGATIVE", wantScore: 0.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClassification(tt.raw)
			require.NoError(t, err)
			require.NotEmpty(t, got)
			assert.Equal(t, tt.wantLabel, got[0].Label)
			assert.InDelta(t, tt.wantScore, got[0].Score, 1e-9)
		})
	}
}

func TestParseClassificationRejects(t *testing.T) {
	_, err := ParseClassification("I cannot decide")
	assert.Error(t, err)

	_, err = ParseClassification(`[]`)
	assert.ErrorIs(t, err, analysis.ErrNoClassification)

	_, err = ParseClassification(`{"label": "", "score": 0.5}`)
	assert.ErrorIs(t, err, analysis.ErrNoClassification)
}

func TestSummaryPromptCarriesBounds(t *testing.T) {
	prompt := SummaryPrompt("body text", analysis.SummaryOptions{MinLength: 50, MaxLength: 160})
	assert.Contains(t, prompt, "50 to 160")
	assert.Contains(t, prompt, "body text")
}

func TestCleanSummary(t *testing.T) {
	assert.Equal(t, "A summary.", cleanSummary("```\nA summary.\n```"))
	assert.Equal(t, "A summary.", cleanSummary("  A summary.  "))
}

func TestNormalizeOpenAIBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "", want: ""},
		{in: "http://localhost:8080", want: "http://localhost:8080/v1"},
		{in: "http://localhost:8080/", want: "http://localhost:8080/v1"},
		{in: "https://api.example.com/v1/", want: "https://api.example.com/v1"},
		{in: "https://gateway.example.com/openai", want: "https://gateway.example.com/openai/v1"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeOpenAIBaseURL(tt.in))
		})
	}
}
