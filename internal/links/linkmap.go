package links

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/lazydino/lazyblog/internal/post"
)

// Map associates source file references with published post paths.
type Map map[string]string

// LoadMap reads a JSON link map. A missing file yields an empty map.
func LoadMap(file string) (Map, error) {
	data, err := os.ReadFile(file)
	if errors.Is(err, fs.ErrNotExist) {
		return Map{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read link map: %w", err)
	}

	m := Map{}
	if len(strings.TrimSpace(string(data))) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode link map %s: %w", file, err)
	}
	return m, nil
}

// Resolve finds the post path for href: an exact key first, otherwise the
// first key in sorted order that ends with href on a segment boundary. Hrefs
// without an extension are also tried with ".md" appended. Fragments and
// leading relative segments are ignored.
func (m Map) Resolve(href string) (string, bool) {
	href = normalizeHref(href)
	if href == "" {
		return "", false
	}
	candidates := []string{href}
	if path.Ext(href) == "" {
		candidates = append(candidates, href+".md")
	}

	for _, c := range candidates {
		if target, ok := m[c]; ok && target != "" {
			return target, true
		}
	}

	keys := m.Keys()
	for _, c := range candidates {
		for _, key := range keys {
			if strings.HasSuffix(key, "/"+c) && m[key] != "" {
				return m[key], true
			}
		}
	}
	return "", false
}

func normalizeHref(href string) string {
	href = strings.TrimSpace(href)
	if i := strings.IndexAny(href, "#?"); i >= 0 {
		href = href[:i]
	}
	if href == "" {
		return ""
	}
	return strings.TrimPrefix(path.Clean("/"+href), "/")
}

// Keys returns the map keys in sorted order.
func (m Map) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Merge returns a map holding the entries of m overridden by other.
func (m Map) Merge(other Map) Map {
	out := make(Map, len(m)+len(other))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}

type postSource interface {
	Posts() []post.Post
}

// Build derives the link map for a set of posts, keyed by source file name.
func Build(src postSource) Map {
	m := Map{}
	for _, p := range src.Posts() {
		m[p.Path+".md"] = p.Path
	}
	return m
}

// Link is one outbound reference of a post.
type Link struct {
	Href     string `json:"href"`
	Target   string `json:"target,omitempty"`
	Resolved bool   `json:"resolved"`
}

// ResolveAll resolves every outbound link of body.
func (m Map) ResolveAll(body string) []Link {
	hrefs := Outbound(body)
	out := make([]Link, 0, len(hrefs))
	for _, href := range hrefs {
		target, ok := m.Resolve(href)
		out = append(out, Link{Href: href, Target: target, Resolved: ok})
	}
	return out
}
