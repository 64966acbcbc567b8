package models

// DocumentInfo describes the PDF a report was produced from. Nothing about
// the document is stored.
type DocumentInfo struct {
	Filename  string `json:"filename"`
	FileHash  string `json:"fileHash"`
	SizeBytes int64  `json:"sizeBytes"`
	PageCount int    `json:"pageCount"`
}
