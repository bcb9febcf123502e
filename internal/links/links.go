// Package links resolves references between posts: wiki-links, relative
// markdown links and the published link map.
package links

import (
	"bytes"
	"net/url"
	"path"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var (
	wikiLinkPattern = regexp.MustCompile(`\[\[([^|\]]+)(?:\|([^\]]+))?\]\]`)
	schemePattern   = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*:`)
)

// RewriteWikiLinks turns [[target|label]] into a regular markdown link. When
// the label is missing the last path segment of the target is shown.
func RewriteWikiLinks(body string) string {
	return wikiLinkPattern.ReplaceAllStringFunc(body, func(match string) string {
		groups := wikiLinkPattern.FindStringSubmatch(match)
		target := strings.TrimSpace(groups[1])
		label := strings.TrimSpace(groups[2])
		if label == "" {
			label = strings.TrimSuffix(path.Base(target), ".md")
		}
		if strings.ContainsAny(target, " ()<>") {
			target = "<" + target + ">"
		}
		return "[" + label + "](" + target + ")"
	})
}

// IsExternal reports whether href points outside the blog.
func IsExternal(href string) bool {
	return schemePattern.MatchString(href) || strings.HasPrefix(href, "//")
}

// Outbound lists the internal link destinations in a markdown body, sorted
// and without duplicates. Wiki-links are included.
func Outbound(body string) []string {
	source := []byte(RewriteWikiLinks(body))
	document := goldmark.DefaultParser().Parse(text.NewReader(source))

	seen := make(map[string]struct{})
	_ = ast.Walk(document, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		link, ok := n.(*ast.Link)
		if !ok {
			return ast.WalkContinue, nil
		}
		dest := string(bytes.TrimSpace(link.Destination))
		if unescaped, err := url.PathUnescape(dest); err == nil {
			dest = unescaped
		}
		if dest == "" || strings.HasPrefix(dest, "#") || IsExternal(dest) {
			return ast.WalkContinue, nil
		}
		seen[dest] = struct{}{}
		return ast.WalkContinue, nil
	})

	out := make([]string, 0, len(seen))
	for dest := range seen {
		out = append(out, dest)
	}
	sort.Strings(out)
	return out
}
