package analysis

import (
	"context"
	"strings"
	"sync"
)

type summarizeCall struct {
	text string
	opts SummaryOptions
}

type fakeSummarizer struct {
	mu     sync.Mutex
	calls  []summarizeCall
	failOn string
	err    error
}

func (f *fakeSummarizer) Summarize(_ context.Context, text string, opts SummaryOptions) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, summarizeCall{text: text, opts: opts})
	if f.err != nil && (f.failOn == "" || strings.Contains(text, f.failOn)) {
		return "", f.err
	}
	return "summary of " + strings.TrimSpace(strings.SplitN(strings.TrimSpace(text), " ", 2)[0]), nil
}

type fakeClassifier struct {
	inputs  []string
	results []Classification
	err     error
}

func (f *fakeClassifier) Classify(_ context.Context, text string) ([]Classification, error) {
	f.inputs = append(f.inputs, text)
	if f.err != nil {
		return nil, f.err
	}
	return f.results, nil
}
