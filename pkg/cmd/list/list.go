/*
Copyright © 2024 Ryan Painter paintersrp@gmail.com

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package list

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/lazydino/lazyblog/internal/post"
	"github.com/lazydino/lazyblog/internal/render"
	"github.com/lazydino/lazyblog/internal/state"
	cmdutil "github.com/lazydino/lazyblog/pkg/cmd"
	"github.com/lazydino/lazyblog/pkg/flags"
)

const maxColumnWidth = 48

func NewCmdList(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls", "l"},
		Short:   "List every post in the content directory",
		Long: heredoc.Doc(`
			Prints a table of the posts found in the content directory with their
			document path, title, creation date and tags.

			Files that fail to read or carry malformed front matter are skipped and
			reported in the log.
		`),
		Example: heredoc.Doc(`
			lazyblog list
			lazyblog list --sort created --tag react
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sortBy, err := flags.HandleSort(cmd)
			if err != nil {
				return err
			}
			tag, err := flags.HandleTag(cmd)
			if err != nil {
				return err
			}
			return run(cmd, s, sortBy, tag)
		},
	}

	flags.AddSort(cmd)
	flags.AddTag(cmd)
	return cmd
}

func run(cmd *cobra.Command, s *state.State, sortBy, tag string) error {
	snap, err := cmdutil.Snapshot(cmd, s)
	if err != nil {
		return err
	}

	posts := Filter(snap.Posts(), tag)
	Sort(posts, sortBy)

	out := cmd.OutOrStdout()
	if len(posts) == 0 {
		if tag != "" {
			fmt.Fprintf(out, "No posts tagged %q.\n", tag)
		} else {
			fmt.Fprintln(out, "No posts found in", s.ContentDir)
		}
		return nil
	}

	return write(out, posts, cmdutil.ColorEnabled(out))
}

// Filter keeps the posts carrying tag. An empty tag keeps everything.
func Filter(posts []post.Post, tag string) []post.Post {
	if tag == "" {
		return posts
	}
	out := posts[:0:0]
	for _, p := range posts {
		if p.HasTag(tag) {
			out = append(out, p)
		}
	}
	return out
}

// Sort orders posts in place. Posts by creation date are newest first with
// undated posts last; ties fall back to the document path.
func Sort(posts []post.Post, by string) {
	switch by {
	case "title":
		sort.SliceStable(posts, func(i, j int) bool {
			a, b := strings.ToLower(posts[i].Title), strings.ToLower(posts[j].Title)
			if a != b {
				return a < b
			}
			return posts[i].Path < posts[j].Path
		})
	case "created":
		sort.SliceStable(posts, func(i, j int) bool {
			a, aok := posts[i].Created()
			b, bok := posts[j].Created()
			switch {
			case aok && bok && !a.Equal(b):
				return a.After(b)
			case aok != bok:
				return aok
			}
			return posts[i].Path < posts[j].Path
		})
	default:
		sort.SliceStable(posts, func(i, j int) bool {
			return posts[i].Path < posts[j].Path
		})
	}
}

func write(out io.Writer, posts []post.Post, color bool) error {
	columns := []render.Column{
		{Title: "Path"},
		{Title: "Title"},
		{Title: "Created"},
		{Title: "Tags"},
	}
	rows := make([][]string, len(posts))
	for i, p := range posts {
		created := p.CreatedAt
		if t, ok := p.Created(); ok {
			created = t.Format("2006-01-02")
		}
		rows[i] = []string{p.Path, p.Title, created, strings.Join(p.Tags, ", ")}
	}

	for i := range columns {
		width := lipgloss.Width(columns[i].Title)
		for _, row := range rows {
			width = max(width, lipgloss.Width(row[i]))
		}
		columns[i].Width = min(width, maxColumnWidth)
	}

	_, err := io.WriteString(out, render.Table(columns, rows, color))
	return err
}
