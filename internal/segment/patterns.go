// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package segment

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"
)

// NamedPattern is one header regex in a pattern file.
type NamedPattern struct {
	// Name labels the pattern (e.g. "swiss-fr", "german-paragraph").
	Name string `yaml:"name"`

	// Regex is the header expression. It must carry a capture group for the
	// article number.
	Regex string `yaml:"regex"`
}

// PatternFile is the YAML schema of a --patterns file.
type PatternFile struct {
	Patterns []NamedPattern `yaml:"patterns"`
}

// LoadPatterns reads a YAML pattern file and returns the alternation of all
// its patterns, each validated to compile on its own.
func LoadPatterns(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading pattern file: %w", err)
	}

	var file PatternFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return "", fmt.Errorf("parsing pattern file %s: %w", path, err)
	}
	if len(file.Patterns) == 0 {
		return "", fmt.Errorf("pattern file %s defines no patterns", path)
	}

	parts := make([]string, 0, len(file.Patterns))
	for _, p := range file.Patterns {
		if p.Regex == "" {
			return "", fmt.Errorf("pattern %q in %s has an empty regex", p.Name, path)
		}
		if _, err := regexp.Compile(p.Regex); err != nil {
			return "", fmt.Errorf("pattern %q in %s: %w", p.Name, path, err)
		}
		parts = append(parts, "(?:"+p.Regex+")")
	}
	return strings.Join(parts, "|"), nil
}
