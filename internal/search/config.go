package search

import (
	"fmt"
	"strings"

	"github.com/lazydino/lazyblog/internal/constants"
	"github.com/lazydino/lazyblog/internal/post"
)

// EmptyQueryPolicy decides what a query without any visible characters
// returns.
type EmptyQueryPolicy string

const (
	// EmptyMatchesNone returns no results for an empty query.
	EmptyMatchesNone EmptyQueryPolicy = "none"
	// EmptyMatchesAll returns every post, in input order.
	EmptyMatchesAll EmptyQueryPolicy = "all"
)

// ParseEmptyQueryPolicy reads a policy name from configuration. An empty
// value selects EmptyMatchesNone.
func ParseEmptyQueryPolicy(value string) (EmptyQueryPolicy, error) {
	switch EmptyQueryPolicy(strings.ToLower(strings.TrimSpace(value))) {
	case "", EmptyMatchesNone:
		return EmptyMatchesNone, nil
	case EmptyMatchesAll:
		return EmptyMatchesAll, nil
	default:
		return "", fmt.Errorf("unknown empty query policy %q (want %q or %q)", value, EmptyMatchesNone, EmptyMatchesAll)
	}
}

// Options describes matcher behavior.
type Options struct {
	// EmptyQuery selects the result of a blank query.
	EmptyQuery EmptyQueryPolicy
	// SnippetWindow is the number of characters shown on each side of a body
	// match.
	SnippetWindow int
}

func (o Options) withDefaults() Options {
	if o.EmptyQuery == "" {
		o.EmptyQuery = EmptyMatchesNone
	}
	if o.SnippetWindow <= 0 {
		o.SnippetWindow = constants.DefaultSnippetWindow
	}
	return o
}

// Strategy names the rule that accepted a post.
type Strategy string

const (
	MatchTitle    Strategy = "title"
	MatchBody     Strategy = "body"
	MatchInitials Strategy = "initials"
	MatchTag      Strategy = "tag"
	// MatchEmpty marks results produced by EmptyMatchesAll.
	MatchEmpty Strategy = "empty"
)

// Result captures a post accepted by the matcher.
type Result struct {
	Post      post.Post
	MatchFrom Strategy
	// TitleSpan is the highlighted part of the title, valid when HasTitleSpan
	// is set.
	TitleSpan    Span
	HasTitleSpan bool
	// Snippet is a window of plain text around the body match, or the
	// summary when the body did not match.
	Snippet string
	// Tag is the first tag that matched, if any.
	Tag string
}
