// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package records

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pdiddy/article-engine/pkg/types"
)

// maxLineBytes bounds a single JSONL line. Legal articles run a few hundred
// KB at most; 16 MB leaves ample headroom.
const maxLineBytes = 16 << 20

// SchemaError reports a malformed article line: invalid JSON or a missing
// required field.
type SchemaError struct {
	Line  int
	Field string
	Err   error
}

func (e *SchemaError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("line %d: missing required field %q", e.Line, e.Field)
	}
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// ReshapeSummary holds counts from a reshape run.
type ReshapeSummary struct {
	Written int
	Skipped int
}

// ToGraphRAG projects an article record into the generic retrieval schema:
// id is "<doc_id>_<article_number>", title passes through when present and
// is otherwise derived from the article number, text is unchanged, and the
// remaining fields move into metadata.
func ToGraphRAG(a types.Article) types.GraphRAGRecord {
	title := a.Title
	if title == "" {
		title = "Art. " + a.ArticleNumber
	}
	return types.GraphRAGRecord{
		ID:    a.DocID + "_" + a.ArticleNumber,
		Title: title,
		Text:  a.Text,
		Metadata: types.RecordMetadata{
			DocID:         a.DocID,
			ArticleNumber: a.ArticleNumber,
			PageStart:     a.PageStart,
			PageEnd:       a.PageEnd,
			Jurisdiction:  a.Jurisdiction,
			Lang:          a.Lang,
			PDFPath:       a.PDFPath,
		},
	}
}

// validate checks the fields the reshape contract requires on every line.
func validate(a types.Article, line int) *SchemaError {
	switch {
	case a.DocID == "":
		return &SchemaError{Line: line, Field: "doc_id"}
	case a.ArticleNumber == "":
		return &SchemaError{Line: line, Field: "article_number"}
	case a.Text == "":
		return &SchemaError{Line: line, Field: "text"}
	}
	return nil
}

// Reshape streams articlesPath line by line, writes one GraphRAG record per
// valid input line to outPath, and reports progress on w. Malformed lines
// follow onError: LineErrorSkip warns and counts, LineErrorAbort fails on
// the first one. Blank lines are ignored.
func Reshape(articlesPath, outPath string, onError types.LineErrorPolicy, w io.Writer) (ReshapeSummary, error) {
	in, err := os.Open(articlesPath)
	if err != nil {
		return ReshapeSummary{}, fmt.Errorf("opening articles file: %w", err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return ReshapeSummary{}, fmt.Errorf("creating %s: %w", outPath, err)
	}
	buf := bufio.NewWriter(out)
	enc := json.NewEncoder(buf)

	if onError == "" {
		onError = types.LineErrorSkip
	}

	var summary ReshapeSummary
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), maxLineBytes)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var article types.Article
		var schemaErr *SchemaError
		if err := json.Unmarshal([]byte(line), &article); err != nil {
			schemaErr = &SchemaError{Line: lineNo, Err: err}
		} else {
			schemaErr = validate(article, lineNo)
		}

		if schemaErr != nil {
			if onError == types.LineErrorAbort {
				out.Close()
				return summary, schemaErr
			}
			fmt.Fprintf(w, "skipped %s\n", schemaErr)
			summary.Skipped++
			continue
		}

		if err := enc.Encode(ToGraphRAG(article)); err != nil {
			out.Close()
			return summary, fmt.Errorf("encoding line %d: %w", lineNo, err)
		}
		summary.Written++
	}
	if err := scanner.Err(); err != nil {
		out.Close()
		return summary, fmt.Errorf("reading %s: %w", articlesPath, err)
	}

	if err := buf.Flush(); err != nil {
		out.Close()
		return summary, err
	}
	if err := out.Close(); err != nil {
		return summary, err
	}

	fmt.Fprintf(w, "\nreshaped: %d written, %d skipped\n", summary.Written, summary.Skipped)
	return summary, nil
}
