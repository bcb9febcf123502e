package fzf

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/lazydino/lazyblog/internal/cache"
	"github.com/lazydino/lazyblog/internal/post"
	"github.com/lazydino/lazyblog/internal/render"
)

const previewCacheSize = 64

// ErrNoSelection is returned when the picker was closed without a choice.
var ErrNoSelection = errors.New("no post selected")

// FuzzyFinder lets the user pick a post interactively with a rendered
// preview.
type FuzzyFinder struct {
	Header string
	posts  []post.Post

	find     func(posts []post.Post, label func(int) string, opts ...fuzzyfinder.Option) (int, error)
	preview  func(body string, width int) (string, error)
	// rendered holds previews of the current picker session by post index
	// and width.
	rendered *cache.LRU[previewKey, string]
}

type previewKey struct {
	index int
	width int
}

func NewFuzzyFinder(posts []post.Post, header string) *FuzzyFinder {
	return &FuzzyFinder{
		Header:   header,
		posts:    posts,
		find:     findPost,
		preview:  render.Markdown,
		rendered: cache.New[previewKey, string](previewCacheSize),
	}
}

func findPost(posts []post.Post, label func(int) string, opts ...fuzzyfinder.Option) (int, error) {
	return fuzzyfinder.Find(posts, label, opts...)
}

// Run opens the picker with query prefilled and returns the chosen post.
func (f *FuzzyFinder) Run(query string) (post.Post, error) {
	if len(f.posts) == 0 {
		return post.Post{}, fmt.Errorf("no posts to choose from")
	}

	options := []fuzzyfinder.Option{
		fuzzyfinder.WithPreviewWindow(f.renderMarkdownPreview),
	}
	if query != "" {
		options = append(options, fuzzyfinder.WithQuery(query))
	}
	if f.Header != "" {
		options = append(options, fuzzyfinder.WithHeader(f.Header))
	}

	idx, err := f.find(f.posts, f.label, options...)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		return post.Post{}, ErrNoSelection
	}
	if err != nil {
		return post.Post{}, fmt.Errorf("error selecting post: %w", err)
	}
	if idx < 0 || idx >= len(f.posts) {
		return post.Post{}, ErrNoSelection
	}
	return f.posts[idx], nil
}

func (f *FuzzyFinder) label(i int) string {
	p := f.posts[i]
	if len(p.Tags) == 0 {
		return fmt.Sprintf("%s [No tags] ", p.Title)
	}
	return fmt.Sprintf("%s [Tags: %s] ", p.Title, strings.Join(p.Tags, ", "))
}

func (f *FuzzyFinder) renderMarkdownPreview(i, w, h int) string {
	if i < 0 || i >= len(f.posts) {
		return ""
	}

	key := previewKey{index: i, width: w}
	if markdown, ok := f.rendered.Get(key); ok {
		return markdown
	}

	markdown, err := f.preview(f.posts[i].Body, w-4)
	if err != nil {
		return "Error rendering markdown"
	}
	f.rendered.Put(key, markdown)
	return markdown
}
