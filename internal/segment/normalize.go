// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"regexp"
	"strings"
)

// superscripts maps Unicode superscript digits to their ASCII forms. Scanned
// PDFs render footnote references glued to article numbers this way.
var superscripts = map[rune]rune{
	'⁰': '0', '¹': '1', '²': '2', '³': '3', '⁴': '4',
	'⁵': '5', '⁶': '6', '⁷': '7', '⁸': '8', '⁹': '9',
}

var (
	romanRE       = regexp.MustCompile(`^(?i)M{0,4}(CM|CD|D?C{0,3})(XC|XL|L?X{0,3})(IX|IV|V?I{0,3})$`)
	digitSuffixRE = regexp.MustCompile(`^([0-9]{1,3})([A-Za-z])([0-9]*)$`)
	digitsRE      = regexp.MustCompile(`^[0-9]+$`)
	romanTailRE   = regexp.MustCompile(`^([A-Za-z]+?)([0-9]*)$`)
)

// isRoman reports whether tok is a well-formed roman numeral.
func isRoman(tok string) bool {
	return tok != "" && len(tok) <= 8 && romanRE.MatchString(tok)
}

// NormalizeNumber canonicalizes a raw article number captured from a header
// line, splitting off a glued footnote reference when one is detected:
//
//	"70"    -> ("70", "")
//	"70a³"  -> ("70a", "3")
//	"7064"  -> ("70", "64")
//	"IV12"  -> ("IV", "12")
//	"iv"    -> ("IV", "")
//
// Digit footnotes longer than tailMax are never split off. ok is false when
// raw is neither a digit-based number nor a roman numeral.
func NormalizeNumber(raw string, tailMax int) (number, footnote string, ok bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", false
	}
	if tailMax < 1 {
		tailMax = defaultFootnoteTail
	}

	// Superscript digits are always a footnote, wherever they start.
	if i := strings.IndexFunc(raw, func(r rune) bool { _, sup := superscripts[r]; return sup }); i >= 0 {
		footnote = foldSuperscripts(raw[i:])
		if !digitsRE.MatchString(footnote) {
			return "", "", false
		}
		raw = raw[:i]
	}

	switch {
	case digitsRE.MatchString(raw):
		// A plain number glued to a footnote: "7064" -> 70 + 64. Only split
		// when the base stays a plausible 1-3 digit article number.
		if footnote == "" && len(raw) > 3 && len(raw)-tailMax <= 3 {
			return raw[:len(raw)-tailMax], raw[len(raw)-tailMax:], true
		}
		return raw, footnote, true

	case digitSuffixRE.MatchString(raw):
		m := digitSuffixRE.FindStringSubmatch(raw)
		num := m[1] + strings.ToLower(m[2])
		tail := m[3]
		if tail != "" {
			if footnote != "" || len(tail) > tailMax {
				return "", "", false
			}
			footnote = tail
		}
		return num, footnote, true

	default:
		m := romanTailRE.FindStringSubmatch(raw)
		if m == nil || !isRoman(m[1]) {
			return "", "", false
		}
		tail := m[2]
		if tail != "" {
			if footnote != "" || len(tail) > tailMax {
				return "", "", false
			}
			footnote = tail
		}
		return strings.ToUpper(m[1]), footnote, true
	}
}

// foldSuperscripts rewrites superscript digits as ASCII digits.
func foldSuperscripts(s string) string {
	return strings.Map(func(r rune) rune {
		if d, sup := superscripts[r]; sup {
			return d
		}
		return r
	}, s)
}
