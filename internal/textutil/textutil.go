// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textutil provides the text normalization helpers shared by the
// segmentation and catalog stages.
package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// StripAccents returns s decomposed to NFKD with combining marks removed and
// lowercased ("Conclu à Genève" -> "conclu a geneve"). Used to build the
// accent-insensitive shadow text stored next to each article.
func StripAccents(s string) string {
	if s == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range norm.NFKD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Preview returns the first n runes of the trimmed text.
func Preview(s string, n int) string {
	s = strings.TrimSpace(s)
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// CollapseSpaces trims s and replaces every run of whitespace with a single
// space. Soft hyphens are dropped and hyphenation breaks ("exploita- tion")
// are rejoined.
func CollapseSpaces(s string) string {
	s = strings.ReplaceAll(s, "­", "")
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "- ", "-")
}
