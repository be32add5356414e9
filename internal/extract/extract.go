// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract drives the PDF-to-articles pipeline: span extraction,
// article segmentation, HTML sidecars, and the articles.jsonl output.
// Documents are processed sequentially; a failing document is logged and
// skipped, never aborting the batch.
package extract

import (
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/pdiddy/article-engine/internal/pdftext"
	"github.com/pdiddy/article-engine/internal/records"
	"github.com/pdiddy/article-engine/internal/segment"
	"github.com/pdiddy/article-engine/internal/sidecar"
	"github.com/pdiddy/article-engine/pkg/types"
)

// htmlDir is the sidecar subdirectory under the output base.
const htmlDir = "html"

// defaultPreviewChars is the TextPreview length when none is configured.
const defaultPreviewChars = 4000

// BatchResult holds the outcome of a batch extraction run.
type BatchResult struct {
	Processed int
	Failed    int
	Empty     int
	Articles  int
}

// Total returns the number of documents handled.
func (r BatchResult) Total() int {
	return r.Processed + r.Failed
}

// HasFailures reports whether any document failed extraction.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// FindPDFs walks dir recursively and returns every *.pdf path in lexical
// order, which keeps batch output deterministic for a fixed input set.
func FindPDFs(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".pdf") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	return paths, nil
}

// Batch processes pdfPaths through the segmenter, writing articles to rw and
// per-document status lines to w. Each document's records are flushed only
// after the whole document succeeded.
func Batch(pdfPaths []string, cfg types.ExtractConfig, seg *segment.Segmenter, rw *records.Writer, w io.Writer) BatchResult {
	var result BatchResult
	for _, path := range pdfPaths {
		articles, err := ProcessPDF(path, cfg, seg)
		if err != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", filepath.Base(path), err)
			result.Failed++
			continue
		}

		writeErr := false
		for _, a := range articles {
			if err := rw.Write(a); err != nil {
				fmt.Fprintf(w, "failed:    %s (%v)\n", filepath.Base(path), err)
				result.Failed++
				writeErr = true
				break
			}
		}
		if writeErr {
			continue
		}
		if err := rw.Flush(); err != nil {
			fmt.Fprintf(w, "failed:    %s (%v)\n", filepath.Base(path), err)
			result.Failed++
			continue
		}

		result.Processed++
		result.Articles += len(articles)
		if len(articles) == 0 {
			// Data-quality signal, not an error: no header matched.
			fmt.Fprintf(w, "no-match:  %s (0 articles)\n", filepath.Base(path))
			result.Empty++
			continue
		}
		fmt.Fprintf(w, "extracted: %s (%d articles)\n", filepath.Base(path), len(articles))
	}

	fmt.Fprintf(w, "\nBatch summary: %d processed, %d failed, %d without headers, %d articles (total: %d)\n",
		result.Processed, result.Failed, result.Empty, result.Articles, result.Total())
	return result
}

// ProcessPDF extracts one document: it iterates pages once, feeding the
// segmenter accumulator and writing a sidecar per page, then attaches each
// article's sidecar paths for its page range.
func ProcessPDF(path string, cfg types.ExtractConfig, seg *segment.Segmenter) ([]types.Article, error) {
	doc, err := pdftext.Open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	numPages := doc.NumPages()
	if numPages == 0 {
		return nil, nil
	}

	first, err := doc.Page(1)
	if err != nil {
		return nil, err
	}

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	info := segment.DocumentInfo{
		DocID:        segment.GuessDocID(segment.PageText(first), stem),
		Title:        segment.GuessDocTitle(first),
		Jurisdiction: cfg.Jurisdiction,
		Lang:         cfg.Lang,
		PDFPath:      path,
	}

	acc := seg.Start(info)
	sidecars := make([]string, 0, numPages)

	for n := 1; n <= numPages; n++ {
		page := first
		if n > 1 {
			page, err = doc.Page(n)
			if err != nil {
				return nil, err
			}
		}

		if cfg.WriteHTML {
			path, err := sidecar.Write(filepath.Join(cfg.OutDir, htmlDir), info.DocID, page)
			if err != nil {
				return nil, err
			}
			sidecars = append(sidecars, path)
		}

		acc.AddPage(page)
	}

	previewChars := cfg.PreviewChars
	if previewChars <= 0 {
		previewChars = defaultPreviewChars
	}
	articles := acc.Finish(previewChars)

	if cfg.WriteHTML {
		for i := range articles {
			a := &articles[i]
			if a.PageStart >= 1 && a.PageEnd <= len(sidecars) {
				a.HTMLPages = append([]string(nil), sidecars[a.PageStart-1:a.PageEnd]...)
			}
		}
	}
	return articles, nil
}
