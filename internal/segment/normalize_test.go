// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import "testing"

func TestNormalizeNumber(t *testing.T) {
	tests := []struct {
		raw      string
		number   string
		footnote string
		ok       bool
	}{
		// Plain numbers.
		{raw: "1", number: "1", ok: true},
		{raw: "70", number: "70", ok: true},
		{raw: "100", number: "100", ok: true},

		// Letter suffixes are lowercased.
		{raw: "70a", number: "70a", ok: true},
		{raw: "70A", number: "70a", ok: true},

		// Unicode superscripts become footnotes.
		{raw: "70a³", number: "70a", footnote: "3", ok: true},
		{raw: "IV²", number: "IV", footnote: "2", ok: true},
		{raw: "5¹²", number: "5", footnote: "12", ok: true},

		// Glued ASCII footnotes.
		{raw: "7064", number: "70", footnote: "64", ok: true},
		{raw: "12345", number: "123", footnote: "45", ok: true},
		{raw: "70a12", number: "70a", footnote: "12", ok: true},
		{raw: "IV12", number: "IV", footnote: "12", ok: true},

		// Roman numerals are validated and uppercased.
		{raw: "iv", number: "IV", ok: true},
		{raw: "XIV", number: "XIV", ok: true},
		{raw: "IVXX", ok: false},

		// Garbage.
		{raw: "", ok: false},
		{raw: "abc", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			number, footnote, ok := NormalizeNumber(tt.raw, 2)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if number != tt.number {
				t.Errorf("number = %q, want %q", number, tt.number)
			}
			if footnote != tt.footnote {
				t.Errorf("footnote = %q, want %q", footnote, tt.footnote)
			}
		})
	}
}
