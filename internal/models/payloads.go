package models

// These structs define the JSON payloads of the document-analyzer HTTP
// function.

const (
	StatusSuccess = "success"
	StatusEmpty   = "empty"
	StatusError   = "error"
)

// AnalyzeRequest is the JSON body used to analyze a PDF stored in GCS.
// Uploads carry the same fields as multipart form values.
type AnalyzeRequest struct {
	GCSUri      string `json:"gcsUri"`
	SummaryType string `json:"summaryType"`
	TopN        int    `json:"topN,omitempty"`
}

// AnalyzeResponse is the view model handed to the presentation layer.
type AnalyzeResponse struct {
	Status       string          `json:"status"`
	Message      string          `json:"message,omitempty"`
	Document     *DocumentInfo   `json:"document,omitempty"`
	TopWords     []WordFrequency `json:"topWords,omitempty"`
	TopWordsText string          `json:"topWordsText,omitempty"`
	Chart        *BarChart       `json:"chart,omitempty"`
	Sentiment    *SentimentView  `json:"sentiment,omitempty"`
	Summary      *SummaryView    `json:"summary,omitempty"`
}

type WordFrequency struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// BarChart is the series for the word-frequency bar chart.
type BarChart struct {
	Title  string   `json:"title"`
	XLabel string   `json:"xLabel"`
	YLabel string   `json:"yLabel"`
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

type SentimentView struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
	Text  string  `json:"text"`
}

type SummaryView struct {
	Type    string `json:"type"`
	Heading string `json:"heading"`
	Text    string `json:"text"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Status string `json:"status"`
	Error  string `json:"error"`
}
