package analysis

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// DefaultTopWords is the number of ranked words reported when the caller
// does not ask for a specific count.
const DefaultTopWords = 5

// WordCount is one entry of the ranked frequency list.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

var wordTokenRegex = regexp.MustCompile(`[\p{L}\p{N}_]+`)

// RankWords returns the topN most frequent non-stop-words of text, ordered by
// count descending. Words with equal counts keep the order in which they were
// first seen. The second return value renders the list as "word (count), ...".
func RankWords(text string, topN int) ([]WordCount, string) {
	if topN <= 0 {
		topN = DefaultTopWords
	}

	var counts []WordCount
	index := make(map[string]int)
	for _, token := range wordTokenRegex.FindAllString(strings.ToLower(text), -1) {
		if englishStopWords.contains(token) {
			continue
		}
		if i, ok := index[token]; ok {
			counts[i].Count++
			continue
		}
		index[token] = len(counts)
		counts = append(counts, WordCount{Word: token, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > topN {
		counts = counts[:topN]
	}
	return counts, RenderWordCounts(counts)
}

// RenderWordCounts formats ranked words for display.
func RenderWordCounts(words []WordCount) string {
	parts := make([]string, len(words))
	for i, w := range words {
		parts[i] = fmt.Sprintf("%s (%d)", w.Word, w.Count)
	}
	return strings.Join(parts, ", ")
}
