// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"sort"
	"strings"
)

// baselineTolerance is the maximum baseline Y distance, in page units, for
// two spans to be considered part of the same visual line.
const baselineTolerance = 2.0

// Line is a visual text line: spans sharing a baseline, left to right.
type Line struct {
	Y     float64
	Spans []Span
}

// Text joins the line's span texts, inserting a space where the horizontal
// gap between adjacent spans suggests a word break the extractor dropped.
func (l Line) Text() string {
	var b strings.Builder
	for i, s := range l.Spans {
		if i > 0 {
			prev := l.Spans[i-1]
			gap := s.X0 - prev.X1
			threshold := 0.3 * prev.FontSize
			if threshold <= 0 {
				threshold = 1.0
			}
			if gap > threshold && !strings.HasSuffix(prev.Text, " ") && !strings.HasPrefix(s.Text, " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(s.Text)
	}
	return b.String()
}

// Lines groups a page's spans into visual lines in reading order:
// top-to-bottom (descending PDF Y), then left-to-right.
func Lines(p Page) []Line {
	if len(p.Spans) == 0 {
		return nil
	}

	spans := make([]Span, len(p.Spans))
	copy(spans, p.Spans)
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Y0 != spans[j].Y0 {
			return spans[i].Y0 > spans[j].Y0
		}
		return spans[i].X0 < spans[j].X0
	})

	var lines []Line
	for _, s := range spans {
		if n := len(lines); n > 0 && lines[n-1].Y-s.Y0 <= baselineTolerance {
			lines[n-1].Spans = append(lines[n-1].Spans, s)
			continue
		}
		lines = append(lines, Line{Y: s.Y0, Spans: []Span{s}})
	}

	for i := range lines {
		sort.SliceStable(lines[i].Spans, func(a, b int) bool {
			return lines[i].Spans[a].X0 < lines[i].Spans[b].X0
		})
	}
	return lines
}
