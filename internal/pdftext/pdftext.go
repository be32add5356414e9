// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext extracts positioned text spans from PDF files, one page at
// a time, in document order. Coordinates follow the PDF convention: origin at
// the bottom-left of the page, Y increasing upward.
package pdftext

import (
	"fmt"
	"os"

	pdflib "github.com/ledongthuc/pdf"
)

// Default page dimensions (US Letter) used when a page has no usable MediaBox.
const (
	defaultPageWidth  = 612.0
	defaultPageHeight = 792.0
)

// Span is a contiguous run of text on a page with position and font metadata.
type Span struct {
	Text     string
	X0       float64
	Y0       float64
	X1       float64
	Y1       float64
	FontSize float64
	Font     string
}

// Page is one physical page: its 1-based number, dimensions, and spans in
// extraction order.
type Page struct {
	Number int
	Width  float64
	Height float64
	Spans  []Span
}

// ExtractionError reports a PDF that could not be opened or parsed.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Document is an open PDF. Pages are extracted lazily; re-open the file to
// iterate again.
type Document struct {
	file   *os.File
	reader *pdflib.Reader
	path   string
}

// Open opens the PDF at path read-only. It returns an *ExtractionError if the
// file is not a valid PDF.
func Open(path string) (*Document, error) {
	f, r, err := pdflib.Open(path)
	if err != nil {
		return nil, &ExtractionError{Path: path, Err: err}
	}
	return &Document{file: f, reader: r, path: path}, nil
}

// Close releases the underlying file.
func (d *Document) Close() error {
	return d.file.Close()
}

// Path returns the path the document was opened from.
func (d *Document) Path() string { return d.path }

// NumPages returns the physical page count.
func (d *Document) NumPages() int {
	return d.reader.NumPage()
}

// Page extracts the spans of the 1-based page n. The underlying parser
// panics on some malformed content streams, so extraction recovers and
// reports those as an *ExtractionError.
func (d *Document) Page(n int) (page Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ExtractionError{Path: d.path, Err: fmt.Errorf("page %d: %v", n, r)}
		}
	}()

	if n < 1 || n > d.reader.NumPage() {
		return Page{}, &ExtractionError{Path: d.path, Err: fmt.Errorf("page %d out of range", n)}
	}

	p := d.reader.Page(n)
	if p.V.IsNull() {
		return Page{Number: n, Width: defaultPageWidth, Height: defaultPageHeight}, nil
	}

	width, height := pageSize(p)
	page = Page{Number: n, Width: width, Height: height}

	for _, t := range p.Content().Text {
		if t.S == "" {
			continue
		}
		page.Spans = append(page.Spans, Span{
			Text:     t.S,
			X0:       t.X,
			Y0:       t.Y,
			X1:       t.X + t.W,
			Y1:       t.Y + t.FontSize,
			FontSize: t.FontSize,
			Font:     t.Font,
		})
	}
	return page, nil
}

// pageSize reads the MediaBox, falling back to US Letter.
func pageSize(p pdflib.Page) (width, height float64) {
	width, height = defaultPageWidth, defaultPageHeight
	mediaBox := p.V.Key("MediaBox")
	if mediaBox.Kind() == pdflib.Array && mediaBox.Len() == 4 {
		x0 := mediaBox.Index(0).Float64()
		y0 := mediaBox.Index(1).Float64()
		x1 := mediaBox.Index(2).Float64()
		y1 := mediaBox.Index(3).Float64()
		if x1 > x0 && y1 > y0 {
			width, height = x1-x0, y1-y0
		}
	}
	return width, height
}
