package search

import (
	"strings"

	"github.com/lazydino/lazyblog/internal/hangul"
)

// Span is a half-open range [Start, End) of character offsets.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func (s Span) Len() int { return s.End - s.Start }

// Highlight locates query in text. A literal case-insensitive occurrence is
// preferred; otherwise the span covers the characters holding the first and
// last typed letter of the query.
func Highlight(text, query string) (Span, bool) {
	return highlight(text, prepare(query))
}

func highlight(text string, q preparedQuery) (Span, bool) {
	if q.empty() {
		return Span{}, false
	}
	if span, ok := literalSpan(text, q.raw); ok {
		return span, true
	}

	d := hangul.Decompose(text)
	positions, ok := hangul.Subsequence(d.Letters, q.letters)
	if !ok {
		return Span{}, false
	}
	first := d.Source[positions[0]]
	last := d.Source[positions[len(positions)-1]]
	return Span{Start: first, End: last + 1}, true
}

func literalSpan(text, query string) (Span, bool) {
	needle := lowerRunes(query)
	start := indexRunes(lowerRunes(text), needle)
	if start < 0 {
		return Span{}, false
	}
	return Span{Start: start, End: start + len(needle)}, true
}

// Apply splits text around the span and passes the three parts to fn. Out of
// range spans are clamped to the text.
func (s Span) Apply(text string, fn func(before, match, after string) string) string {
	runes := []rune(text)
	start := clamp(s.Start, 0, len(runes))
	end := clamp(s.End, start, len(runes))
	return fn(string(runes[:start]), string(runes[start:end]), string(runes[end:]))
}

const ellipsis = "…"

// Snippet returns up to window characters on each side of span, marking cut
// ends with an ellipsis.
func Snippet(text string, span Span, window int) string {
	runes := []rune(text)
	start := clamp(span.Start, 0, len(runes))
	end := clamp(span.End, start, len(runes))
	if end == start && end < len(runes) {
		end++
	}
	if window < 0 {
		window = 0
	}

	snippetStart := max(0, start-window)
	snippetEnd := min(len(runes), end+window)

	snippet := strings.TrimSpace(string(runes[snippetStart:snippetEnd]))
	snippet = strings.Join(strings.Fields(snippet), " ")
	if snippetStart > 0 {
		snippet = ellipsis + snippet
	}
	if snippetEnd < len(runes) {
		snippet += ellipsis
	}
	return snippet
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
