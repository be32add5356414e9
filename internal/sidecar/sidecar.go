// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sidecar renders a page's text spans into a standalone HTML file
// that preserves the visual layout without rasterizing the page. One file
// per page, named <doc_id>_p<page>.html.
package sidecar

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"

	"github.com/pdiddy/article-engine/internal/pdftext"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.DocID}} page {{.Number}}</title>
<style>
body { margin: 0; background: #f0f0f0; font-family: serif; }
.page { position: relative; margin: 16px auto; background: #fff; box-shadow: 0 1px 4px rgba(0,0,0,.3); }
.page span { position: absolute; white-space: pre; line-height: 1; }
</style>
</head>
<body>
<div class="page" style="width:{{printf "%.2f" .Width}}px;height:{{printf "%.2f" .Height}}px">
{{range .Spans}}<span style="left:{{printf "%.2f" .Left}}px;top:{{printf "%.2f" .Top}}px;font-size:{{printf "%.2f" .FontSize}}px">{{.Text}}</span>
{{end}}</div>
</body>
</html>
`))

type pageView struct {
	DocID  string
	Number int
	Width  float64
	Height float64
	Spans  []spanView
}

type spanView struct {
	Text     string
	Left     float64
	Top      float64
	FontSize float64
}

// FileName returns the sidecar file name for a document page.
func FileName(docID string, page int) string {
	return fmt.Sprintf("%s_p%d.html", docID, page)
}

// Write renders page into dir, overwriting any existing file, and returns
// the written path. Span Y coordinates are flipped from the PDF bottom-left
// origin to the CSS top-left origin.
func Write(dir, docID string, page pdftext.Page) (string, error) {
	view := pageView{
		DocID:  docID,
		Number: page.Number,
		Width:  page.Width,
		Height: page.Height,
		Spans:  make([]spanView, 0, len(page.Spans)),
	}
	for _, s := range page.Spans {
		view.Spans = append(view.Spans, spanView{
			Text:     s.Text,
			Left:     s.X0,
			Top:      page.Height - s.Y1,
			FontSize: s.FontSize,
		})
	}

	path := filepath.Join(dir, FileName(docID, page.Number))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating sidecar %s: %w", path, err)
	}
	if err := pageTemplate.Execute(f, view); err != nil {
		f.Close()
		return "", fmt.Errorf("rendering sidecar %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("writing sidecar %s: %w", path, err)
	}
	return path, nil
}
