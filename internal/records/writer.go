// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package records reads and writes the pipeline's JSONL files: the article
// records emitted by extraction and the generic GraphRAG schema produced by
// the reshape stage.
package records

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/article-engine/pkg/types"
)

// Writer appends article records to a JSONL file, one JSON object per line.
// Records are buffered; Flush after each document keeps a document's output
// atomic with respect to interruption between documents.
type Writer struct {
	f   *os.File
	buf *bufio.Writer
	enc *json.Encoder
	n   int
}

// NewWriter creates (or truncates) the JSONL file at path, creating parent
// directories as needed.
func NewWriter(path string) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory for %s: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}
	buf := bufio.NewWriter(f)
	return &Writer{f: f, buf: buf, enc: json.NewEncoder(buf)}, nil
}

// Write appends one article record.
func (w *Writer) Write(a types.Article) error {
	if err := w.enc.Encode(a); err != nil {
		return fmt.Errorf("encoding article %s/%s: %w", a.DocID, a.ArticleNumber, err)
	}
	w.n++
	return nil
}

// Flush forces buffered records to disk.
func (w *Writer) Flush() error {
	return w.buf.Flush()
}

// Count returns the number of records written so far.
func (w *Writer) Count() int { return w.n }

// Close flushes and closes the file.
func (w *Writer) Close() error {
	if err := w.buf.Flush(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}
