// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// PreamblePolicy decides what happens to text that appears before the first
// article header in a document.
type PreamblePolicy string

const (
	// PreambleDiscard drops pre-header text.
	PreambleDiscard PreamblePolicy = "discard"
	// PreambleKeep emits pre-header text as a sentinel article with
	// ArticleNumber "preamble".
	PreambleKeep PreamblePolicy = "keep"
)

// LineErrorPolicy decides how the reshape stage handles a malformed input line.
type LineErrorPolicy string

const (
	// LineErrorSkip skips the line, warns with its line number, and counts it.
	LineErrorSkip LineErrorPolicy = "skip"
	// LineErrorAbort fails the run on the first malformed line.
	LineErrorAbort LineErrorPolicy = "abort"
)

// ExtractConfig holds settings for the extraction stage.
type ExtractConfig struct {
	// PDFDir is the input directory, searched recursively for *.pdf files.
	PDFDir string `json:"pdf_dir" yaml:"pdf_dir"`

	// OutDir receives articles.jsonl and the html/ sidecar directory.
	OutDir string `json:"out_dir" yaml:"out_dir"`

	// Jurisdiction and Lang are stamped onto every emitted article.
	Jurisdiction string `json:"jurisdiction" yaml:"jurisdiction"`
	Lang         string `json:"lang" yaml:"lang"`

	// HeaderPattern overrides the default article-header regex. Empty uses
	// the built-in multilingual pattern.
	HeaderPattern string `json:"header_pattern" yaml:"header_pattern"`

	// Preamble selects the pre-header text policy (default discard).
	Preamble PreamblePolicy `json:"preamble" yaml:"preamble"`

	// PreviewChars is the TextPreview length in runes (default 4000).
	PreviewChars int `json:"preview_chars" yaml:"preview_chars"`

	// WriteHTML controls sidecar emission (default true).
	WriteHTML bool `json:"write_html" yaml:"write_html"`
}

// ReshapeConfig holds settings for the reshape stage.
type ReshapeConfig struct {
	// ArticlesPath is the input articles.jsonl.
	ArticlesPath string `json:"articles_path" yaml:"articles_path"`

	// OutPath is the graphrag_input.jsonl destination.
	OutPath string `json:"out_path" yaml:"out_path"`

	// OnError selects the malformed-line policy (default skip).
	OnError LineErrorPolicy `json:"on_error" yaml:"on_error"`
}

// CatalogConfig holds settings for the article catalog stage.
type CatalogConfig struct {
	// CatalogDir is the directory holding articles.db and export files.
	CatalogDir string `json:"catalog_dir" yaml:"catalog_dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}
