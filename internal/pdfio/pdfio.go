// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfio reads text and page renders from PDF documents.
// MuPDF (via go-fitz) does the actual parsing; pipeline code works
// against the Document interface so tests can supply fakes.
package pdfio

import (
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// renderDPI is the resolution for page rasterization. Table pages are
// rendered at 300 dpi so column text stays legible to the model.
const renderDPI = 300

// Document is the subset of PDF access the pipelines need. Page
// indices are 0-based at this level; the helpers below take 1-based
// page numbers as they appear on the command line.
type Document interface {
	// NumPage returns the number of pages in the document.
	NumPage() int

	// PageText returns the text content of page n (0-based).
	PageText(n int) (string, error)

	// PagePNG returns a PNG render of page n (0-based).
	PagePNG(n int) ([]byte, error)

	// Close releases the underlying document.
	Close() error
}

// fitzDocument wraps a MuPDF document.
type fitzDocument struct {
	doc *fitz.Document
}

// Open opens the PDF at path. Any open failure (missing file, corrupt
// document) is fatal to the caller's pipeline.
func Open(path string) (Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("opening PDF %s: %w", path, err)
	}
	return &fitzDocument{doc: doc}, nil
}

func (f *fitzDocument) NumPage() int {
	return f.doc.NumPage()
}

func (f *fitzDocument) PageText(n int) (string, error) {
	return f.doc.Text(n)
}

func (f *fitzDocument) PagePNG(n int) ([]byte, error) {
	return f.doc.ImagePNG(n, renderDPI)
}

func (f *fitzDocument) Close() error {
	return f.doc.Close()
}

// SectionText extracts the text of pages start through end (1-based,
// inclusive), joined by newlines. An end past the last page is clamped
// to the document length; a start past the last page yields empty
// text. Read errors abort the extraction.
func SectionText(doc Document, start, end int) (string, error) {
	if start < 1 {
		return "", fmt.Errorf("start page %d is not positive", start)
	}
	if end < start {
		return "", fmt.Errorf("end page %d precedes start page %d", end, start)
	}

	var pages []string
	for p := start; p <= end; p++ {
		if p > doc.NumPage() {
			break
		}
		text, err := doc.PageText(p - 1)
		if err != nil {
			return "", fmt.Errorf("reading page %d: %w", p, err)
		}
		pages = append(pages, text)
	}

	return strings.Join(pages, "\n"), nil
}

// PageContent returns one page's text and a PNG render (1-based page
// number). Unlike SectionText, an out-of-bounds page is an error: the
// per-page pipelines report and skip it.
func PageContent(doc Document, page int) (string, []byte, error) {
	if page < 1 || page > doc.NumPage() {
		return "", nil, fmt.Errorf("page %d out of bounds (document has %d pages)", page, doc.NumPage())
	}

	text, err := doc.PageText(page - 1)
	if err != nil {
		return "", nil, fmt.Errorf("reading text of page %d: %w", page, err)
	}

	png, err := doc.PagePNG(page - 1)
	if err != nil {
		return "", nil, fmt.Errorf("rendering page %d: %w", page, err)
	}

	return text, png, nil
}
