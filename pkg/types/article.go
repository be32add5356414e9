// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared data model for the article pipeline.
package types

// Article is one legally numbered textual unit extracted from a PDF,
// together with the provenance needed to trace it back to its source pages.
// One line of articles.jsonl is one Article.
type Article struct {
	// DocID identifies the source document. For Swiss compilation PDFs it is
	// the classified compilation number found on the first page (e.g.
	// "0.747.205"); otherwise the PDF file stem.
	DocID string `json:"doc_id" yaml:"doc_id"`

	// ArticleNumber is the bare article number without the "Art." prefix
	// (e.g. "1", "70a", "IV"). Unique within a document.
	ArticleNumber string `json:"article_number" yaml:"article_number"`

	// ArticleFootnote is a footnote reference that was glued to the article
	// number in the source (superscript digits), split off during
	// normalization. Empty when the header carried none.
	ArticleFootnote string `json:"article_footnote,omitempty" yaml:"article_footnote,omitempty"`

	// Title is "Art. <number>, <document title>" when the document title
	// could be determined, "Art. <number>" otherwise.
	Title string `json:"title,omitempty" yaml:"title,omitempty"`

	// Text is the article body: every line from the header (inclusive) to
	// the next header (exclusive), in reading order.
	Text string `json:"text" yaml:"text"`

	// TextASCII is Text with accents stripped and lowercased, kept alongside
	// the original for diacritic-insensitive keyword search.
	TextASCII string `json:"text_ascii,omitempty" yaml:"text_ascii,omitempty"`

	// TextPreview is the first PreviewChars characters of Text.
	TextPreview string `json:"text_preview,omitempty" yaml:"text_preview,omitempty"`

	// TextChars is the length of Text in runes.
	TextChars int `json:"text_chars,omitempty" yaml:"text_chars,omitempty"`

	// PageStart and PageEnd are the 1-based physical pages the article spans.
	// PageStart <= PageEnd always holds.
	PageStart int `json:"page_start" yaml:"page_start"`
	PageEnd   int `json:"page_end" yaml:"page_end"`

	// Jurisdiction and Lang are operator-supplied locale codes (e.g. "CH", "fr").
	Jurisdiction string `json:"jurisdiction,omitempty" yaml:"jurisdiction,omitempty"`
	Lang         string `json:"lang,omitempty" yaml:"lang,omitempty"`

	// PDFPath is the path of the source PDF as seen by the extractor.
	PDFPath string `json:"pdf_path,omitempty" yaml:"pdf_path,omitempty"`

	// HTMLPages lists the per-page HTML sidecar files covering
	// [PageStart, PageEnd], in page order.
	HTMLPages []string `json:"html_pages,omitempty" yaml:"html_pages,omitempty"`
}

// RecordMetadata is the provenance block nested inside a GraphRAGRecord.
type RecordMetadata struct {
	DocID         string `json:"doc_id" yaml:"doc_id"`
	ArticleNumber string `json:"article_number" yaml:"article_number"`
	PageStart     int    `json:"page_start" yaml:"page_start"`
	PageEnd       int    `json:"page_end" yaml:"page_end"`
	Jurisdiction  string `json:"jurisdiction,omitempty" yaml:"jurisdiction,omitempty"`
	Lang          string `json:"lang,omitempty" yaml:"lang,omitempty"`
	PDFPath       string `json:"pdf_path,omitempty" yaml:"pdf_path,omitempty"`
}

// GraphRAGRecord is the generic retrieval schema emitted by the reshape
// stage: one line of graphrag_input.jsonl. It is a pure projection of an
// Article; ID is "<doc_id>_<article_number>".
type GraphRAGRecord struct {
	ID       string         `json:"id" yaml:"id"`
	Title    string         `json:"title" yaml:"title"`
	Text     string         `json:"text" yaml:"text"`
	Metadata RecordMetadata `json:"metadata" yaml:"metadata"`
}
