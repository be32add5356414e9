// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGuessDocID(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "banner number", text: "0.747.205\nTexte original\nConvention", want: "0.747.205"},
		{name: "inline number", text: "see RS 747.201.1 for details", want: "747.201.1"},
		{name: "fallback to stem", text: "no compilation number here", want: "mydoc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GuessDocID(tt.text, "mydoc"); got != tt.want {
				t.Errorf("GuessDocID = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGuessDocTitle_BetweenMarkers(t *testing.T) {
	first := page(1,
		"0.747.205",
		"Texte original",
		"Convention relative à la navigation",
		"sur le lac Léman",
		"Conclue le 7 décembre 1976",
	)

	want := "Convention relative à la navigation sur le lac Léman"
	if got := GuessDocTitle(first); got != want {
		t.Errorf("GuessDocTitle = %q, want %q", got, want)
	}
}

func TestGuessDocTitle_NoStartMarker(t *testing.T) {
	first := page(1,
		"Accord sur les transports",
		"Conclu le 2 mai 1992",
	)

	want := "Accord sur les transports"
	if got := GuessDocTitle(first); got != want {
		t.Errorf("GuessDocTitle = %q, want %q", got, want)
	}
}

func TestGuessDocTitle_Fallback(t *testing.T) {
	first := page(1,
		"0.747.205",
		"Loi fédérale sur la navigation",
		"du 3 octobre 1975",
	)

	// No markers: the first plausible line wins.
	want := "Loi fédérale sur la navigation"
	if got := GuessDocTitle(first); got != want {
		t.Errorf("GuessDocTitle = %q, want %q", got, want)
	}
}

func TestGuessDocTitle_Empty(t *testing.T) {
	if got := GuessDocTitle(page(1)); got != "" {
		t.Errorf("GuessDocTitle of empty page = %q, want empty", got)
	}
}

func TestLoadPatterns(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "patterns.yaml")
	content := `patterns:
  - name: swiss-fr
    regex: '^\s*Art\.\s*(\d+[a-z]?)\s*$'
  - name: german-paragraph
    regex: '^\s*§\s*(\d+)\s*$'
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	combined, err := LoadPatterns(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(combined, ")|(?:") {
		t.Errorf("combined pattern %q is not an alternation", combined)
	}

	// The alternation must drive header matching for both branches.
	seg, err := New(combined, "")
	if err != nil {
		t.Fatal(err)
	}
	for _, line := range []string{"Art. 5", "§ 12"} {
		if _, _, ok := seg.MatchHeader(line); !ok {
			t.Errorf("combined pattern did not match %q", line)
		}
	}
}

func TestLoadPatterns_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadPatterns(filepath.Join(dir, "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("patterns:\n  - name: broken\n    regex: '([unclosed'\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPatterns(bad); err == nil {
		t.Error("expected error for invalid regex")
	}

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("patterns: []\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadPatterns(empty); err == nil {
		t.Error("expected error for empty pattern list")
	}
}
