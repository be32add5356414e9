// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/article-engine/internal/pdftext"
	"github.com/pdiddy/article-engine/internal/textutil"
)

// docIDRE matches the Swiss classified-compilation number printed in the
// first-page banner (e.g. "0.747.205").
var docIDRE = regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\b`)

var (
	titleStartRE = regexp.MustCompile(`texte\s+original`)
	titleEndRE   = regexp.MustCompile(`\bconclu(e)?\b`)
	docIDLineRE  = regexp.MustCompile(`^\s*\d{1,3}\.\d{1,3}\.\d{1,3}\s*$`)
)

// GuessDocID scans the first-page text for a compilation number, falling
// back to the given default (the PDF file stem).
func GuessDocID(firstPageText, fallback string) string {
	if m := docIDRE.FindString(firstPageText); m != "" {
		return m
	}
	return fallback
}

// PageText joins a page's lines with newlines, in reading order.
func PageText(p pdftext.Page) string {
	lines := pdftext.Lines(p)
	parts := make([]string, 0, len(lines))
	for _, l := range lines {
		parts = append(parts, l.Text())
	}
	return strings.Join(parts, "\n")
}

// GuessDocTitle derives the document title from the top half of the first
// page: the text between the "Texte original" banner and the
// "Conclu"/"Conclue" date line, matched accent- and case-insensitively.
// Returns "" when no title can be determined.
func GuessDocTitle(first pdftext.Page) string {
	var top []string
	for _, l := range pdftext.Lines(first) {
		if l.Y >= first.Height/2 {
			if t := strings.TrimSpace(l.Text()); t != "" {
				top = append(top, t)
			}
		}
	}

	if title := titleBetweenMarkers(strings.Join(top, "\n")); title != "" {
		return title
	}
	return titleFallback(PageText(first))
}

// titleBetweenMarkers extracts the title segment from text using the banner
// markers. Matching runs over a per-rune accent-folded copy so indexes map
// one-to-one back to the original runes.
func titleBetweenMarkers(text string) string {
	runes := []rune(text)
	folded := foldForSearch(runes)

	start := titleStartRE.FindStringIndex(folded)
	var end []int
	if start != nil {
		end = titleEndRE.FindStringIndex(folded[start[1]:])
		if end != nil {
			end[0] += start[1]
			end[1] += start[1]
		}
	} else {
		end = titleEndRE.FindStringIndex(folded)
	}

	var segment string
	switch {
	case start != nil && end != nil && end[0] > start[1]:
		segment = string(runes[runeIndex(folded, start[1]):runeIndex(folded, end[0])])
	case start == nil && end != nil:
		segment = string(runes[:runeIndex(folded, end[0])])
	default:
		return ""
	}

	return cleanTitleSegment(segment)
}

// titleFallback returns the first plausible title line of the raw page text.
func titleFallback(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		t := strings.TrimSpace(line)
		if t == "" || docIDLineRE.MatchString(t) {
			continue
		}
		if strings.HasPrefix(textutil.StripAccents(t), "texte original") {
			continue
		}
		return textutil.CollapseSpaces(t)
	}
	return ""
}

func cleanTitleSegment(segment string) string {
	var kept []string
	for _, line := range strings.Split(segment, "\n") {
		if t := strings.TrimSpace(line); t != "" {
			kept = append(kept, t)
		}
	}
	return textutil.CollapseSpaces(strings.Join(kept, " "))
}

// foldForSearch lowercases and strips accents rune-by-rune, keeping rune
// count identical to the input so match positions can be mapped back.
func foldForSearch(runes []rune) string {
	out := make([]rune, len(runes))
	for i, r := range runes {
		d := []rune(norm.NFKD.String(string(r)))
		if len(d) > 0 && !unicode.Is(unicode.Mn, d[0]) {
			r = d[0]
		}
		out[i] = unicode.ToLower(r)
	}
	return string(out)
}

// runeIndex converts a byte index in s to the corresponding rune index.
func runeIndex(s string, byteIdx int) int {
	return len([]rune(s[:byteIdx]))
}
