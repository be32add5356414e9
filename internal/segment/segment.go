// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package segment partitions the span stream of a document into article
// records by matching article-header lines against a compiled pattern.
package segment

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/pdiddy/article-engine/internal/pdftext"
	"github.com/pdiddy/article-engine/internal/textutil"
	"github.com/pdiddy/article-engine/pkg/types"
)

// DefaultHeaderPattern matches a line that is an article header in the
// jurisdictions this pipeline targets: a header keyword followed by a digit
// sequence (optional letter suffix, optional glued footnote digits) or a
// roman numeral. The single capture group is the raw article number, which
// is normalized separately.
const DefaultHeaderPattern = `^\s*(?:Article|Art\.?|Articolo|Artikel|§)\s*` +
	`([0-9⁰¹²³⁴⁵⁶⁷⁸⁹]+[A-Za-z]?[0-9⁰¹²³⁴⁵⁶⁷⁸⁹]*|[IVXLCDMivxlcdm]+[0-9⁰¹²³⁴⁵⁶⁷⁸⁹]*)\s*$`

// defaultFootnoteTail is the maximum length of a glued footnote reference
// split off the article number.
const defaultFootnoteTail = 2

// preambleNumber is the sentinel article number for pre-header text when the
// keep policy is active.
const preambleNumber = "preamble"

// Segmenter detects article headers and drives the per-document accumulator.
type Segmenter struct {
	re      *regexp.Regexp
	policy  types.PreamblePolicy
	tailMax int
}

// New compiles pattern (empty selects DefaultHeaderPattern) and returns a
// Segmenter with the given preamble policy. The pattern must contain at
// least one capture group for the article number.
func New(pattern string, policy types.PreamblePolicy) (*Segmenter, error) {
	if pattern == "" {
		pattern = DefaultHeaderPattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compiling header pattern: %w", err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("header pattern %q has no capture group for the article number", pattern)
	}
	if policy == "" {
		policy = types.PreambleDiscard
	}
	return &Segmenter{re: re, policy: policy, tailMax: defaultFootnoteTail}, nil
}

// MatchHeader tests one line of text against the header pattern and returns
// the normalized article number and footnote on a match.
func (s *Segmenter) MatchHeader(line string) (number, footnote string, ok bool) {
	m := s.re.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	// With an alternation from a pattern file only one branch's group is
	// populated; take the first non-empty one.
	var raw string
	for _, g := range m[1:] {
		if g != "" {
			raw = g
			break
		}
	}
	return NormalizeNumber(raw, s.tailMax)
}

// DocumentInfo carries the per-document fields stamped onto every article.
type DocumentInfo struct {
	DocID        string
	Title        string
	Jurisdiction string
	Lang         string
	PDFPath      string
}

// Accumulator is the explicit open/close state of a single document scan.
// It starts in an implicit preamble buffer; each header match closes the
// current article and opens the next one.
type Accumulator struct {
	seg  *Segmenter
	info DocumentInfo

	number    string
	footnote  string
	headered  bool
	pageStart int
	pageEnd   int
	text      strings.Builder

	articles []types.Article
}

// Start opens a fresh accumulator for one document.
func (s *Segmenter) Start(info DocumentInfo) *Accumulator {
	return &Accumulator{seg: s, info: info}
}

// AddPage feeds one page, scanning its lines in reading order.
func (a *Accumulator) AddPage(p pdftext.Page) {
	for _, line := range pdftext.Lines(p) {
		a.addLine(p.Number, line.Text())
	}
}

func (a *Accumulator) addLine(page int, text string) {
	if number, footnote, ok := a.seg.MatchHeader(text); ok {
		a.close()
		a.number = number
		a.footnote = footnote
		a.headered = true
		a.pageStart = page
		a.pageEnd = page
		a.text.WriteString(text)
		a.text.WriteByte('\n')
		return
	}

	if a.pageStart == 0 {
		a.pageStart = page
	}
	a.pageEnd = page
	a.text.WriteString(text)
	a.text.WriteByte('\n')
}

// close emits the current buffer as an article when it qualifies: a header
// article with non-empty text always, the preamble buffer only under the
// keep policy.
func (a *Accumulator) close() {
	text := strings.TrimSpace(a.text.String())
	defer func() {
		a.number = ""
		a.footnote = ""
		a.headered = false
		a.pageStart = 0
		a.pageEnd = 0
		a.text.Reset()
	}()

	if text == "" {
		return
	}
	if !a.headered && a.seg.policy != types.PreambleKeep {
		return
	}

	number := a.number
	if !a.headered {
		number = preambleNumber
	}

	a.articles = append(a.articles, types.Article{
		DocID:           a.info.DocID,
		ArticleNumber:   number,
		ArticleFootnote: a.footnote,
		Title:           articleTitle(number, a.info.Title),
		Text:            text,
		PageStart:       a.pageStart,
		PageEnd:         a.pageEnd,
		Jurisdiction:    a.info.Jurisdiction,
		Lang:            a.info.Lang,
		PDFPath:         a.info.PDFPath,
	})
}

// Finish closes the final buffer and returns the document's articles with
// the derived text variants filled in.
func (a *Accumulator) Finish(previewChars int) []types.Article {
	a.close()
	for i := range a.articles {
		art := &a.articles[i]
		art.TextASCII = textutil.StripAccents(art.Text)
		art.TextPreview = textutil.Preview(art.Text, previewChars)
		art.TextChars = len([]rune(art.Text))
	}
	return a.articles
}

// articleTitle formats the display title: "Art. 5, <doc title>" when the
// document title is known.
func articleTitle(number, docTitle string) string {
	var title string
	if number == preambleNumber {
		title = "Preamble"
	} else {
		title = "Art. " + number
	}
	if docTitle != "" {
		title += ", " + docTitle
	}
	return title
}
