// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"strings"
	"testing"

	"github.com/pdiddy/article-engine/internal/pdftext"
	"github.com/pdiddy/article-engine/pkg/types"
)

// page builds a synthetic page with one span per text line, laid out
// top-to-bottom.
func page(number int, lines ...string) pdftext.Page {
	p := pdftext.Page{Number: number, Width: 612, Height: 792}
	y := 750.0
	for _, text := range lines {
		p.Spans = append(p.Spans, pdftext.Span{
			Text: text, X0: 72, Y0: y, X1: 400, Y1: y + 10, FontSize: 10,
		})
		y -= 20
	}
	return p
}

func newSegmenter(t *testing.T, policy types.PreamblePolicy) *Segmenter {
	t.Helper()
	seg, err := New("", policy)
	if err != nil {
		t.Fatal(err)
	}
	return seg
}

func TestMatchHeader(t *testing.T) {
	seg := newSegmenter(t, types.PreambleDiscard)

	tests := []struct {
		line     string
		number   string
		footnote string
		ok       bool
	}{
		{line: "Art. 5", number: "5", ok: true},
		{line: "  Art. 5  ", number: "5", ok: true},
		{line: "Art 5", number: "5", ok: true},
		{line: "Article 12", number: "12", ok: true},
		{line: "Artikel 7a", number: "7a", ok: true},
		{line: "Articolo IV", number: "IV", ok: true},
		{line: "§ 3", number: "3", ok: true},
		{line: "Art. 70a³", number: "70a", footnote: "3", ok: true},

		// Mid-sentence citations are not headers.
		{line: "as stated in Art. 5 above", ok: false},
		{line: "Art. 5 Scope", ok: false},
		{line: "Scope", ok: false},
		{line: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			number, footnote, ok := seg.MatchHeader(tt.line)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if number != tt.number || footnote != tt.footnote {
				t.Errorf("got (%q, %q), want (%q, %q)", number, footnote, tt.number, tt.footnote)
			}
		})
	}
}

func TestSegment_TwoPageScenario(t *testing.T) {
	seg := newSegmenter(t, types.PreambleDiscard)
	info := DocumentInfo{DocID: "d1", Jurisdiction: "CH", Lang: "fr", PDFPath: "/pdfs/d1.pdf"}

	acc := seg.Start(info)
	acc.AddPage(page(1, "Art. 1", "Scope", "This agreement applies to navigation."))
	acc.AddPage(page(2, "Art. 2", "Definitions", "Terms used in this agreement."))
	articles := acc.Finish(4000)

	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2", len(articles))
	}

	first := articles[0]
	if first.ArticleNumber != "1" || first.PageStart != 1 || first.PageEnd != 1 {
		t.Errorf("first article = %s p%d-%d, want 1 p1-1", first.ArticleNumber, first.PageStart, first.PageEnd)
	}
	if !strings.HasPrefix(first.Text, "Art. 1\n") || !strings.Contains(first.Text, "Scope") {
		t.Errorf("first article text missing header or body: %q", first.Text)
	}
	if first.Title != "Art. 1" {
		t.Errorf("title = %q, want %q", first.Title, "Art. 1")
	}
	if first.DocID != "d1" || first.Jurisdiction != "CH" || first.Lang != "fr" {
		t.Errorf("document fields not stamped: %+v", first)
	}

	second := articles[1]
	if second.ArticleNumber != "2" || second.PageStart != 2 || second.PageEnd != 2 {
		t.Errorf("second article = %s p%d-%d, want 2 p2-2", second.ArticleNumber, second.PageStart, second.PageEnd)
	}
}

func TestSegment_ArticleSpanningPages(t *testing.T) {
	seg := newSegmenter(t, types.PreambleDiscard)
	acc := seg.Start(DocumentInfo{DocID: "d1"})
	acc.AddPage(page(1, "Art. 1", "This text continues"))
	acc.AddPage(page(2, "onto the second page."))
	acc.AddPage(page(3, "Art. 2", "Short."))
	articles := acc.Finish(4000)

	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2", len(articles))
	}
	if articles[0].PageStart != 1 || articles[0].PageEnd != 2 {
		t.Errorf("first article pages = %d-%d, want 1-2", articles[0].PageStart, articles[0].PageEnd)
	}
	if articles[1].PageStart != 3 || articles[1].PageEnd != 3 {
		t.Errorf("second article pages = %d-%d, want 3-3", articles[1].PageStart, articles[1].PageEnd)
	}

	// Page ranges must be non-overlapping and non-decreasing.
	for i := 1; i < len(articles); i++ {
		if articles[i].PageStart < articles[i-1].PageEnd {
			t.Errorf("article %d starts on page %d before previous ended on %d",
				i, articles[i].PageStart, articles[i-1].PageEnd)
		}
	}
}

func TestSegment_PreamblePolicies(t *testing.T) {
	pages := []pdftext.Page{
		page(1, "Convention on Navigation", "Signed in Geneva.", "Art. 1", "Scope."),
	}

	t.Run("discard drops pre-header text", func(t *testing.T) {
		acc := newSegmenter(t, types.PreambleDiscard).Start(DocumentInfo{DocID: "d1"})
		for _, p := range pages {
			acc.AddPage(p)
		}
		articles := acc.Finish(4000)
		if len(articles) != 1 {
			t.Fatalf("got %d articles, want 1", len(articles))
		}
		if articles[0].ArticleNumber != "1" {
			t.Errorf("article number = %q, want %q", articles[0].ArticleNumber, "1")
		}
	})

	t.Run("keep emits a sentinel preamble article", func(t *testing.T) {
		acc := newSegmenter(t, types.PreambleKeep).Start(DocumentInfo{DocID: "d1"})
		for _, p := range pages {
			acc.AddPage(p)
		}
		articles := acc.Finish(4000)
		if len(articles) != 2 {
			t.Fatalf("got %d articles, want 2", len(articles))
		}
		pre := articles[0]
		if pre.ArticleNumber != "preamble" {
			t.Errorf("sentinel number = %q, want %q", pre.ArticleNumber, "preamble")
		}
		if !strings.Contains(pre.Text, "Signed in Geneva.") {
			t.Errorf("preamble text missing: %q", pre.Text)
		}
		if pre.PageStart != 1 || pre.PageEnd != 1 {
			t.Errorf("preamble pages = %d-%d, want 1-1", pre.PageStart, pre.PageEnd)
		}
	})
}

func TestSegment_NoHeaders(t *testing.T) {
	acc := newSegmenter(t, types.PreambleDiscard).Start(DocumentInfo{DocID: "d1"})
	acc.AddPage(page(1, "Just some prose.", "No articles anywhere."))
	if articles := acc.Finish(4000); len(articles) != 0 {
		t.Errorf("got %d articles, want 0", len(articles))
	}
}

func TestSegment_TextVariants(t *testing.T) {
	acc := newSegmenter(t, types.PreambleDiscard).Start(DocumentInfo{DocID: "d1"})
	acc.AddPage(page(1, "Art. 1", "Conclu à Genève"))
	articles := acc.Finish(10)

	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(articles))
	}
	a := articles[0]
	if !strings.Contains(a.TextASCII, "conclu a geneve") {
		t.Errorf("text_ascii = %q, want accent-stripped lowercase", a.TextASCII)
	}
	if got := len([]rune(a.TextPreview)); got != 10 {
		t.Errorf("preview length = %d, want 10", got)
	}
	if a.TextChars != len([]rune(a.Text)) {
		t.Errorf("text_chars = %d, want %d", a.TextChars, len([]rune(a.Text)))
	}
}

func TestSegment_TitleWithDocumentTitle(t *testing.T) {
	acc := newSegmenter(t, types.PreambleDiscard).Start(DocumentInfo{
		DocID: "0.747.205",
		Title: "Convention relative à la navigation",
	})
	acc.AddPage(page(1, "Art. 1", "Scope."))
	articles := acc.Finish(4000)

	if len(articles) != 1 {
		t.Fatal("expected one article")
	}
	want := "Art. 1, Convention relative à la navigation"
	if articles[0].Title != want {
		t.Errorf("title = %q, want %q", articles[0].Title, want)
	}
}

func TestNew_InvalidPattern(t *testing.T) {
	if _, err := New("([unclosed", types.PreambleDiscard); err == nil {
		t.Error("expected error for invalid regex")
	}
	if _, err := New(`^Art\. \d+$`, types.PreambleDiscard); err == nil {
		t.Error("expected error for pattern without capture group")
	}
}
