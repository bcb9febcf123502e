package post

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/araddon/dateparse"

	"github.com/lazydino/lazyblog/internal/constants"
)

// Post is the record for one published article.
type Post struct {
	ID         string   `json:"id"`
	Path       string   `json:"urlPath"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary"`
	Tags       []string `json:"tags"`
	CreatedAt  string   `json:"createdAt"`
	ModifiedAt string   `json:"modifiedAt"`
	Image      string   `json:"image"`
	Body       string   `json:"content"`
	PlainText  string   `json:"plainContent"`
}

// Options controls how records are derived from source files.
type Options struct {
	// SummaryLength is the number of characters of plain text kept when a post
	// has no summary of its own.
	SummaryLength int
}

func (o Options) summaryLength() int {
	if o.SummaryLength <= 0 {
		return constants.DefaultSummaryLength
	}
	return o.SummaryLength
}

// Parse builds a Post for the document stored at docPath from its raw source.
// Errors are returned only for malformed front matter.
func Parse(docPath string, source []byte, opts Options) (Post, error) {
	block, format, body, err := SplitFrontMatter(source)
	if err != nil {
		return Post{}, err
	}

	fm, err := ParseFrontMatter(block, format)
	if err != nil {
		return Post{}, err
	}

	plain := ExtractPlainText(string(body))

	p := Post{
		ID:         fm.ID,
		Path:       docPath,
		Title:      fm.Title,
		Summary:    fm.Summary,
		Tags:       fm.Tags,
		CreatedAt:  fm.CreatedAt,
		ModifiedAt: fm.ModifiedAt,
		Image:      fm.Image,
		Body:       string(body),
		PlainText:  plain,
	}
	if p.ID == "" {
		p.ID = docPath
	}
	if p.Title == "" {
		p.Title = docPath
	}
	if p.Summary == "" {
		p.Summary = Truncate(plain, opts.summaryLength())
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return p, nil
}

// Truncate keeps the first limit characters of text and appends an ellipsis
// only when something was cut.
func Truncate(text string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit]) + constants.SummaryEllipsis
}

// Clone returns a copy that shares no slices with p.
func (p Post) Clone() Post {
	p.Tags = append([]string{}, p.Tags...)
	return p
}

// URL joins the route prefix and the post path.
func (p Post) URL(prefix string) string {
	if prefix == "" {
		prefix = constants.DefaultRoutePrefix
	}
	return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(p.Path, "/")
}

// Created parses CreatedAt. The stored string is left untouched.
func (p Post) Created() (time.Time, bool) {
	return parseDate(p.CreatedAt)
}

// Modified parses ModifiedAt.
func (p Post) Modified() (time.Time, bool) {
	return parseDate(p.ModifiedAt)
}

// HasTag reports whether any tag equals tag, ignoring case.
func (p Post) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func parseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	t, err := dateparse.ParseAny(value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
