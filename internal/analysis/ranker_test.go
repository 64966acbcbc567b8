package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankWords(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		topN     int
		want     []WordCount
		wantText string
	}{
		{
			name:     "fewer distinct words than topN",
			text:     "cat dog cat bird cat dog fish",
			topN:     5,
			want:     []WordCount{{"cat", 3}, {"dog", 2}, {"bird", 1}, {"fish", 1}},
			wantText: "cat (3), dog (2), bird (1), fish (1)",
		},
		{
			name:     "stop words removed and case folded",
			text:     "The Report and the report, THE analysis of it.",
			topN:     5,
			want:     []WordCount{{"report", 2}, {"analysis", 1}},
			wantText: "report (2), analysis (1)",
		},
		{
			name:     "cut to topN with stable ties",
			text:     "alpha beta gamma delta epsilon zeta beta gamma",
			topN:     3,
			want:     []WordCount{{"beta", 2}, {"gamma", 2}, {"alpha", 1}},
			wantText: "beta (2), gamma (2), alpha (1)",
		},
		{
			name:     "digits and underscores are word characters",
			text:     "v2_final v2_final 2024 report-2024",
			topN:     5,
			want:     []WordCount{{"v2_final", 2}, {"2024", 2}, {"report", 1}},
			wantText: "v2_final (2), 2024 (2), report (1)",
		},
		{
			name:     "only stop words",
			text:     "the and of to",
			topN:     5,
			want:     nil,
			wantText: "",
		},
		{
			name:     "non-positive topN falls back to default",
			text:     "a1 b1 c1 d1 e1 f1",
			topN:     0,
			want:     []WordCount{{"a1", 1}, {"b1", 1}, {"c1", 1}, {"d1", 1}, {"e1", 1}},
			wantText: "a1 (1), b1 (1), c1 (1), d1 (1), e1 (1)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, gotText := RankWords(tt.text, tt.topN)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantText, gotText)
		})
	}
}

func TestRankWordsReturnsExactlyTopNSorted(t *testing.T) {
	text := "one one one two two three three four four five five six seven"
	got, _ := RankWords(text, 5)

	assert.Len(t, got, 5)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Count, got[i].Count)
	}
}
