package analysis

import (
	"fmt"
	"regexp"
	"strings"
)

// PageSource yields the raw text of a page-oriented document.
// Pages are numbered from 1.
type PageSource interface {
	NumPages() int
	PageText(page int) (string, error)
}

// whitespaceClass matches ASCII whitespace including \v, the \x1c-\x1f
// information separators, NEL and the Unicode Z category. unicode.IsSpace
// and RE2's \s both miss some of these.
const whitespaceClass = `[\s\v\x{1c}-\x{1f}\x{85}\p{Z}]`

var (
	// hyphenBreakRegex matches a line-wrap hyphenation such as "docu-\nment".
	hyphenBreakRegex = regexp.MustCompile(`([A-Za-z]+)-` + whitespaceClass + `+`)
	whitespaceRun    = regexp.MustCompile(whitespaceClass + `+`)
)

// ExtractText concatenates the text of every page, one newline after each,
// and returns the normalized result. A page without text contributes nothing
// but its separator. An empty result means the document has no readable text.
func ExtractText(src PageSource) (string, error) {
	var b strings.Builder
	for page := 1; page <= src.NumPages(); page++ {
		text, err := src.PageText(page)
		if err != nil {
			return "", fmt.Errorf("failed to extract text from page %d: %w", page, err)
		}
		b.WriteString(text)
		b.WriteString("\n")
	}
	return Normalize(b.String()), nil
}

// Normalize removes line-wrap hyphenation and collapses every whitespace run
// into a single space.
func Normalize(raw string) string {
	joined := hyphenBreakRegex.ReplaceAllString(raw, "$1")
	return strings.Trim(whitespaceRun.ReplaceAllString(joined, " "), " ")
}

// DocumentText is the outcome of the first pipeline stage: either Empty or
// a non-empty normalized text.
type DocumentText struct {
	text string
}

// NewDocumentText classifies normalized text. The boolean is false when the
// document has no readable text and the remaining stages must be skipped.
func NewDocumentText(normalized string) (DocumentText, bool) {
	if strings.TrimSpace(normalized) == "" {
		return DocumentText{}, false
	}
	return DocumentText{text: normalized}, true
}

func (d DocumentText) String() string { return d.text }
