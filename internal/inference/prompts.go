// Package inference adapts hosted and local language models to the
// analysis.Summarizer and analysis.Classifier interfaces.
package inference

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Lllllllleong/pdfinsight/internal/analysis"
)

// --- Summarizer prompts ---
const SummarizerSystemPrompt = "You are an abstractive summarization model. You write a new, shorter text that captures the meaning of the document you are given. Do not copy sentences verbatim, do not add facts that are not in the document, and never add preambles or commentary."

// --- Sentiment prompts ---
const SentimentSystemPrompt = `You are a binary sentiment classifier equivalent to a model fine-tuned on SST-2.
Classify the overall sentiment of the text you are given as POSITIVE or NEGATIVE.
Respond with a single JSON object and nothing else, for example:
{"label": "POSITIVE", "score": 0.97}
"score" is your confidence in the label, a number between 0 and 1.`

// SummaryPrompt asks for a summary whose length falls inside the bounds of opts.
func SummaryPrompt(text string, opts analysis.SummaryOptions) string {
	return fmt.Sprintf(
		"Summarize the following text in roughly %d to %d tokens. Return only the summary.\n\nText:\n%s",
		opts.MinLength, opts.MaxLength, text,
	)
}

// SentimentPrompt wraps the text to classify.
func SentimentPrompt(text string) string {
	return "Text:\n" + text
}

// sentimentMaxTokens bounds the size of a classification answer.
const sentimentMaxTokens = 64

// ParseClassification decodes a classification answer. It accepts a bare
// JSON object, an array of objects, and either of them wrapped in a markdown
// code fence. Results are ordered by score, highest first.
func ParseClassification(raw string) ([]analysis.Classification, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```JSON")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var results []analysis.Classification
	if err := json.Unmarshal([]byte(cleaned), &results); err != nil {
		var single analysis.Classification
		start := strings.Index(cleaned, "{")
		end := strings.LastIndex(cleaned, "}")
		if start < 0 || end <= start {
			return nil, fmt.Errorf("invalid classification response: %q", raw)
		}
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), &single); err != nil {
			return nil, fmt.Errorf("invalid classification response: %w", err)
		}
		results = []analysis.Classification{single}
	}

	valid := results[:0]
	for _, r := range results {
		r.Label = strings.ToUpper(strings.TrimSpace(r.Label))
		if r.Label == "" {
			continue
		}
		valid = append(valid, r)
	}
	if len(valid) == 0 {
		return nil, analysis.ErrNoClassification
	}
	sort.SliceStable(valid, func(i, j int) bool { return valid[i].Score > valid[j].Score })
	return valid, nil
}

// cleanSummary strips the wrappers chat models tend to add around a summary.
func cleanSummary(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```markdown")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
