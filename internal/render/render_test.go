package render

import (
	"strings"
	"testing"

	"github.com/lazydino/lazyblog/internal/post"
	"github.com/lazydino/lazyblog/internal/search"
)

func TestPlainHighlightMarksSpan(t *testing.T) {
	theme := NewTheme(false)
	got := theme.Highlight(theme.Title, "Learning React Basics", search.Span{Start: 9, End: 14}, true)
	if got != "Learning [React] Basics" {
		t.Fatalf("unexpected highlight %q", got)
	}
	if got := theme.Highlight(theme.Title, "plain", search.Span{}, false); got != "plain" {
		t.Fatalf("expected untouched text, got %q", got)
	}
}

func TestPlainResult(t *testing.T) {
	theme := NewTheme(false)
	r := search.Result{
		Post:         post.Post{Path: "react/basics", Title: "Learning React Basics", Tags: []string{"react"}},
		TitleSpan:    search.Span{Start: 9, End: 14},
		HasTitleSpan: true,
		Snippet:      "intro",
	}
	want := "Learning [React] Basics  /posts/react/basics\n    intro\n    #react"
	if got := theme.Result(r, "/posts/"); got != want {
		t.Fatalf("unexpected result:\n%s", got)
	}
}

func TestMarkdownRendersWikiLinks(t *testing.T) {
	out, err := Markdown("# Title\n\nSee [[guides/setup|Setup]].", 80)
	if err != nil {
		t.Fatalf("Markdown returned error: %v", err)
	}
	if !strings.Contains(out, "Title") || !strings.Contains(out, "Setup") {
		t.Fatalf("unexpected rendering %q", out)
	}
	if strings.Contains(out, "[[") {
		t.Fatalf("wiki-link syntax leaked into output %q", out)
	}
}

func TestPlainTable(t *testing.T) {
	got := Table([]Column{{Title: "Tag", Width: 10}, {Title: "Count", Width: 5}}, [][]string{{"go", "2"}, {"web", "1"}}, false)
	want := "TAG\tCOUNT\ngo\t2\nweb\t1\n"
	if got != want {
		t.Fatalf("unexpected table %q", got)
	}
}

func TestStyledTableContainsRows(t *testing.T) {
	got := Table([]Column{{Title: "Tag", Width: 10}}, [][]string{{"golang"}}, true)
	if !strings.Contains(got, "golang") || !strings.Contains(got, "Tag") {
		t.Fatalf("unexpected styled table %q", got)
	}
}
