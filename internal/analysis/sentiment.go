package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// MaxSentimentInput is the number of characters handed to the classifier.
const MaxSentimentInput = 512

// ErrNoClassification is returned when a classifier answers with no result.
var ErrNoClassification = errors.New("classifier returned no result")

// Classification is one label scored by a sentiment classifier.
type Classification struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// Classifier is a pretrained sentiment model.
type Classifier interface {
	Classify(ctx context.Context, text string) ([]Classification, error)
}

// Sentiment is the polarity of a document.
type Sentiment struct {
	Label string
	Score float64
}

// RoundedScore is the score rounded to two decimal places.
func (s Sentiment) RoundedScore() float64 {
	return math.Round(s.Score*100) / 100
}

func (s Sentiment) String() string {
	return fmt.Sprintf("Label: %s, Score: %.2f", s.Label, s.Score)
}

// ScoreSentiment classifies at most the first MaxSentimentInput characters of
// text and returns the first result. Classifier failures are returned as is;
// the caller treats them as fatal for the request.
func ScoreSentiment(ctx context.Context, classifier Classifier, text string) (Sentiment, error) {
	results, err := classifier.Classify(ctx, Truncate(text, MaxSentimentInput))
	if err != nil {
		return Sentiment{}, fmt.Errorf("sentiment classification failed: %w", err)
	}
	if len(results) == 0 {
		return Sentiment{}, ErrNoClassification
	}
	return Sentiment{Label: results[0].Label, Score: results[0].Score}, nil
}

// Truncate returns the first n characters of s. It counts runes, not tokens,
// so the cut may land inside a word.
func Truncate(s string, n int) string {
	if n < 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
