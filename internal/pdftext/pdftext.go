// Package pdftext reads the text of PDF files page by page.
//
// pdfcpu validates the file and counts its pages; ledongthuc/pdf decodes the
// content streams into plain text.
package pdftext

import (
	"errors"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ErrNotPDF is returned when a file cannot be parsed as a PDF document.
var ErrNotPDF = errors.New("file is not a readable PDF")

// Document is an open PDF file. It implements analysis.PageSource.
type Document struct {
	file      *os.File
	reader    *pdf.Reader
	pageCount int
}

// Open validates the PDF at path and prepares it for text extraction.
// The caller must Close the returned Document.
func Open(path string) (*Document, error) {
	if err := Validate(path); err != nil {
		return nil, err
	}

	pageCount, err := api.PageCountFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get page count: %v", ErrNotPDF, err)
	}

	file, reader, err := openReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotPDF, err)
	}

	return &Document{file: file, reader: reader, pageCount: pageCount}, nil
}

// Validate checks the PDF structure in relaxed mode, which tolerates the
// common defects of real-world producers.
func Validate(path string) error {
	cfg := model.NewDefaultConfiguration()
	cfg.ValidationMode = model.ValidationRelaxed
	if err := api.ValidateFile(path, cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrNotPDF, err)
	}
	return nil
}

// openReader wraps pdf.Open, which panics on some malformed cross-reference tables.
func openReader(path string) (file *os.File, reader *pdf.Reader, err error) {
	defer func() {
		if r := recover(); r != nil {
			if file != nil {
				_ = file.Close()
			}
			file, reader, err = nil, nil, fmt.Errorf("pdf reader panicked: %v", r)
		}
	}()
	return pdf.Open(path)
}

// NumPages returns the number of pages reported by the page tree.
func (d *Document) NumPages() int { return d.pageCount }

// PageText returns the plain text of page n (1-based). Pages without a
// content stream yield an empty string.
func (d *Document) PageText(n int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("malformed content on page %d: %v", n, r)
		}
	}()

	page := d.reader.Page(n)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}

// Close releases the underlying file.
func (d *Document) Close() error {
	if d.file == nil {
		return nil
	}
	return d.file.Close()
}
