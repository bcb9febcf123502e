// Package render turns posts and search results into terminal output.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/lazydino/lazyblog/internal/links"
	"github.com/lazydino/lazyblog/internal/post"
	"github.com/lazydino/lazyblog/internal/search"
)

const defaultWordWrap = 100

// Markdown renders a post body for the terminal. Wiki-links are rewritten to
// regular links first so they show up as links.
func Markdown(body string, width int) (string, error) {
	if width <= 0 {
		width = defaultWordWrap
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dracula"),
		glamour.WithWordWrap(width),
		glamour.WithColorProfile(termenv.ANSI256),
	)
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	return r.Render(links.RewriteWikiLinks(body))
}

// Theme styles CLI output. A plain theme renders text unchanged except for
// marking highlights with brackets.
type Theme struct {
	Color bool
	Title lipgloss.Style
	Match lipgloss.Style
	Path  lipgloss.Style
	Tag   lipgloss.Style
	Dim   lipgloss.Style
}

func NewTheme(color bool) Theme {
	return Theme{
		Color: color,
		Title: lipgloss.NewStyle().
			Bold(true),
		Match: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#0AF")).
			Underline(true),
		Path: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")),
		Tag: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A6E22E")),
		Dim: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			Italic(true),
	}
}

func (t Theme) style(s lipgloss.Style, text string) string {
	if !t.Color || text == "" {
		return text
	}
	return s.Render(text)
}

// Highlight renders text with the span emphasised.
func (t Theme) Highlight(base lipgloss.Style, text string, span search.Span, ok bool) string {
	if !ok {
		return t.style(base, text)
	}
	return span.Apply(text, func(before, match, after string) string {
		if !t.Color {
			return before + "[" + match + "]" + after
		}
		return base.Render(before) + t.Match.Render(match) + base.Render(after)
	})
}

// Tags renders tags as "#tag" tokens.
func (t Theme) Tags(tags []string) string {
	if len(tags) == 0 {
		return ""
	}
	parts := make([]string, len(tags))
	for i, tag := range tags {
		parts[i] = t.style(t.Tag, "#"+tag)
	}
	return strings.Join(parts, " ")
}

// Result renders one search result as a short block.
func (t Theme) Result(r search.Result, prefix string) string {
	var b strings.Builder
	b.WriteString(t.Highlight(t.Title, r.Post.Title, r.TitleSpan, r.HasTitleSpan))
	b.WriteString("  ")
	b.WriteString(t.style(t.Path, r.Post.URL(prefix)))
	if r.Snippet != "" {
		b.WriteString("\n    ")
		b.WriteString(t.style(t.Dim, r.Snippet))
	}
	if tags := t.Tags(r.Post.Tags); tags != "" {
		b.WriteString("\n    ")
		b.WriteString(tags)
	}
	return b.String()
}

// PostHeader renders the metadata block shown above a post body.
func (t Theme) PostHeader(p post.Post, prefix string) string {
	lines := []string{t.style(t.Title, p.Title), t.style(t.Path, p.URL(prefix))}
	if p.CreatedAt != "" {
		lines = append(lines, t.style(t.Dim, "created "+p.CreatedAt))
	}
	if tags := t.Tags(p.Tags); tags != "" {
		lines = append(lines, tags)
	}
	return strings.Join(lines, "\n")
}
