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
package tags

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/lazydino/lazyblog/internal/render"
	"github.com/lazydino/lazyblog/internal/state"
	cmdutil "github.com/lazydino/lazyblog/pkg/cmd"
)

// Count is one tag with the number of posts carrying it.
type Count struct {
	Tag   string
	Posts int
}

func NewCmdTags(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Show every tag with its post count",
		Long: heredoc.Doc(`
			Lists the tags used across the content directory, most used first.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := cmdutil.Snapshot(cmd, s)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			counts := Sorted(snap.Tags())
			if len(counts) == 0 {
				fmt.Fprintln(out, "No tags found.")
				return nil
			}
			return write(out, counts, cmdutil.ColorEnabled(out))
		},
	}

	return cmd
}

// Sorted orders tag counts by descending count, then by tag.
func Sorted(counts map[string]int) []Count {
	out := make([]Count, 0, len(counts))
	for tag, n := range counts {
		out = append(out, Count{Tag: tag, Posts: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Posts != out[j].Posts {
			return out[i].Posts > out[j].Posts
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}

func write(out io.Writer, counts []Count, color bool) error {
	width := len("Tag")
	rows := make([][]string, len(counts))
	for i, c := range counts {
		rows[i] = []string{c.Tag, strconv.Itoa(c.Posts)}
		width = max(width, len(c.Tag))
	}
	columns := []render.Column{
		{Title: "Tag", Width: width},
		{Title: "Count", Width: 5},
	}
	_, err := io.WriteString(out, render.Table(columns, rows, color))
	return err
}
