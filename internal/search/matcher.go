// Package search filters posts against a free-text query. Queries match by
// substring, by typed-letter subsequence (so partially composed Korean
// syllables still hit) or by tag.
package search

import (
	"strings"
	"unicode"

	"github.com/lazydino/lazyblog/internal/hangul"
	"github.com/lazydino/lazyblog/internal/post"
)

// Matcher is safe for concurrent use; it holds no state beyond its options.
type Matcher struct {
	opts Options
}

func NewMatcher(opts Options) *Matcher {
	return &Matcher{opts: opts.withDefaults()}
}

func (m *Matcher) Options() Options { return m.opts }

// Match returns the posts accepted by query in the order they were given.
func (m *Matcher) Match(query string, posts []post.Post) []Result {
	q := prepare(query)
	results := make([]Result, 0)
	if q.empty() {
		if m.opts.EmptyQuery != EmptyMatchesAll {
			return results
		}
		for _, p := range posts {
			results = append(results, Result{Post: p, MatchFrom: MatchEmpty, Snippet: p.Summary})
		}
		return results
	}

	for _, p := range posts {
		if r, ok := m.matchPost(q, p); ok {
			results = append(results, r)
		}
	}
	return results
}

// Matches reports whether a single post is accepted by query.
func (m *Matcher) Matches(query string, p post.Post) bool {
	q := prepare(query)
	if q.empty() {
		return m.opts.EmptyQuery == EmptyMatchesAll
	}
	_, ok := m.matchPost(q, p)
	return ok
}

type preparedQuery struct {
	raw     string
	lowered string
	letters []rune
}

func prepare(query string) preparedQuery {
	trimmed := strings.TrimSpace(query)
	return preparedQuery{
		raw:     trimmed,
		lowered: strings.ToLower(trimmed),
		letters: hangul.Decompose(trimmed).Letters,
	}
}

func (q preparedQuery) empty() bool {
	return len(q.letters) == 0
}

func (q preparedQuery) contains(text string) bool {
	return q.lowered != "" && strings.Contains(strings.ToLower(text), q.lowered)
}

func (q preparedQuery) subsequenceOf(text string) bool {
	_, ok := hangul.Subsequence(hangul.Decompose(text).Letters, q.letters)
	return ok
}

func (m *Matcher) matchPost(q preparedQuery, p post.Post) (Result, bool) {
	r := Result{Post: p}
	switch {
	case q.contains(p.Title):
		r.MatchFrom = MatchTitle
	case q.contains(p.PlainText):
		r.MatchFrom = MatchBody
	case q.subsequenceOf(p.Title) || q.subsequenceOf(p.PlainText):
		r.MatchFrom = MatchInitials
	default:
		tag, ok := matchTag(q, p.Tags)
		if !ok {
			return Result{}, false
		}
		r.MatchFrom = MatchTag
		r.Tag = tag
	}

	r.TitleSpan, r.HasTitleSpan = highlight(p.Title, q)
	r.Snippet = p.Summary
	if r.MatchFrom == MatchBody {
		if span, ok := literalSpan(p.PlainText, q.raw); ok {
			r.Snippet = Snippet(p.PlainText, span, m.opts.SnippetWindow)
		}
	}
	return r, true
}

func matchTag(q preparedQuery, tags []string) (string, bool) {
	for _, tag := range tags {
		if q.contains(tag) || q.subsequenceOf(tag) {
			return tag, true
		}
	}
	return "", false
}

// lowerRunes lowercases rune by rune so offsets into the result are offsets
// into the input.
func lowerRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

func indexRunes(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j, r := range needle {
			if haystack[i+j] != r {
				continue outer
			}
		}
		return i
	}
	return -1
}
