package analysis

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// SummaryMode selects the granularity of a summary.
type SummaryMode string

const (
	QuickSummary    SummaryMode = "Quick Summary"
	DetailedSummary SummaryMode = "Detailed Summary"
	SectionSummary  SummaryMode = "Section-Specific Summary"
)

// SummaryModes lists the selectable modes in display order.
var SummaryModes = []SummaryMode{QuickSummary, DetailedSummary, SectionSummary}

// Valid reports whether m is one of the fixed modes.
func (m SummaryMode) Valid() bool {
	switch m {
	case QuickSummary, DetailedSummary, SectionSummary:
		return true
	}
	return false
}

// Heading is the title shown above the summary text.
func (m SummaryMode) Heading() string { return string(m) + ":" }

const (
	// MaxSummaryInput is the number of characters handed to the summarizer.
	MaxSummaryInput = 1024
	// minSectionLength is the trimmed length a section must exceed to be summarized.
	minSectionLength = 30

	// NoTextMessage is the summary of a document with no text.
	NoTextMessage = "The PDF contains no extractable text."
	// InvalidModeMessage is the summary returned for an unknown mode.
	InvalidModeMessage = "Invalid summary type selected."
	// errorMessagePrefix precedes the summarizer error that replaces a summary.
	errorMessagePrefix = "An error occurred during summarization: "
)

// SummaryOptions bounds the length of a generated summary. Lengths are in
// model tokens.
type SummaryOptions struct {
	MinLength int
	MaxLength int
	// Sample enables random sampling. The dispatcher always decodes
	// deterministically.
	Sample bool
}

var (
	quickOptions    = SummaryOptions{MinLength: 150, MaxLength: 350}
	detailedOptions = SummaryOptions{MinLength: 350, MaxLength: 850}
	sectionOptions  = SummaryOptions{MinLength: 50, MaxLength: 160}
)

// Summarizer is a pretrained abstractive summarization model.
type Summarizer interface {
	Summarize(ctx context.Context, text string, opts SummaryOptions) (string, error)
}

// SummaryResult is the display text for a summary request. Err holds the
// summarizer failure that produced an error text, if any.
type SummaryResult struct {
	Mode SummaryMode
	Text string
	Err  error
}

// Dispatcher routes a summary request to the summarizer with the length
// bounds of the selected mode.
type Dispatcher struct {
	summarizer         Summarizer
	sectionConcurrency int
}

// NewDispatcher creates a Dispatcher. sectionConcurrency bounds the number of
// section summaries generated at once; values below 1 mean sequential.
func NewDispatcher(summarizer Summarizer, sectionConcurrency int) *Dispatcher {
	if sectionConcurrency < 1 {
		sectionConcurrency = 1
	}
	return &Dispatcher{summarizer: summarizer, sectionConcurrency: sectionConcurrency}
}

// Summarize produces the summary text for mode. It never returns an error:
// summarizer failures are turned into a single error text that replaces the
// whole summary.
func (d *Dispatcher) Summarize(ctx context.Context, text string, mode SummaryMode) SummaryResult {
	if strings.TrimSpace(text) == "" {
		return SummaryResult{Mode: mode, Text: NoTextMessage}
	}
	text = Truncate(text, MaxSummaryInput)

	var (
		summary string
		err     error
	)
	switch mode {
	case QuickSummary:
		summary, err = d.summarizer.Summarize(ctx, text, quickOptions)
	case DetailedSummary:
		summary, err = d.summarizer.Summarize(ctx, text, detailedOptions)
	case SectionSummary:
		summary, err = d.summarizeSections(ctx, text)
	default:
		return SummaryResult{Mode: mode, Text: InvalidModeMessage}
	}
	if err != nil {
		return SummaryResult{Mode: mode, Text: errorMessagePrefix + err.Error(), Err: err}
	}
	return SummaryResult{Mode: mode, Text: summary}
}

// summarizeSections summarizes every blank-line separated section longer than
// minSectionLength. Labels use the section's position among all sections.
func (d *Dispatcher) summarizeSections(ctx context.Context, text string) (string, error) {
	sections := strings.Split(text, "\n\n")
	summaries := make([]string, len(sections))

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(d.sectionConcurrency)
	for i, section := range sections {
		if utf8.RuneCountInString(strings.TrimSpace(section)) <= minSectionLength {
			continue
		}
		eg.Go(func() error {
			summary, err := d.summarizer.Summarize(gctx, section, sectionOptions)
			if err != nil {
				return err
			}
			summaries[i] = fmt.Sprintf("Section %d: %s", i+1, summary)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return "", err
	}

	labeled := summaries[:0]
	for _, s := range summaries {
		if s != "" {
			labeled = append(labeled, s)
		}
	}
	return strings.Join(labeled, "\n\n"), nil
}
