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
package links

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/lazydino/lazyblog/internal/links"
	"github.com/lazydino/lazyblog/internal/post"
	"github.com/lazydino/lazyblog/internal/state"
	"github.com/lazydino/lazyblog/pkg/arg"
	cmdutil "github.com/lazydino/lazyblog/pkg/cmd"
	"github.com/lazydino/lazyblog/pkg/cmd/show"
)

func NewCmdLinks(s *state.State) *cobra.Command {
	var (
		unresolvedOnly bool
		backlinks      bool
	)

	cmd := &cobra.Command{
		Use:   "links [path]",
		Short: "Show the outbound links of a post",
		Long: heredoc.Doc(`
			Lists the internal links of a post and the published path each one
			resolves to through the link map. External links and in-page anchors
			are left out.

			Without a path every post with links is reported.
		`),
		Example: heredoc.Doc(`
			lazyblog links guides/setup
			lazyblog links guides/setup --backlinks
			lazyblog links --unresolved
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := cmdutil.Snapshot(cmd, s)
			if err != nil {
				return err
			}
			linkMap, err := s.LinkMap(snap)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if path := arg.HandlePath(args); path != "" {
				p, err := show.Find(s, snap, path)
				if err != nil {
					return err
				}
				if backlinks {
					node := links.BuildGraph(snap.Posts(), linkMap).Nodes[p.Path]
					WriteBacklinks(out, node, s.Config.RoutePrefix)
					return nil
				}
				resolved := linkMap.ResolveAll(p.Body)
				if len(resolved) == 0 {
					fmt.Fprintf(out, "No internal links in %s.\n", p.Path)
					return nil
				}
				Write(out, p, resolved, s.Config.RoutePrefix, unresolvedOnly)
				return nil
			}

			var broken int
			for _, p := range snap.Posts() {
				resolved := linkMap.ResolveAll(p.Body)
				broken += Unresolved(resolved)
				Write(out, p, resolved, s.Config.RoutePrefix, unresolvedOnly)
			}
			if unresolvedOnly {
				fmt.Fprintf(out, "%d unresolved links\n", broken)
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&unresolvedOnly, "unresolved", "u", false, "Only show links that do not resolve")
	cmd.Flags().BoolVarP(&backlinks, "backlinks", "b", false, "Show the posts linking to the given post instead")
	return cmd
}

// Unresolved counts the links that did not resolve.
func Unresolved(resolved []links.Link) int {
	n := 0
	for _, l := range resolved {
		if !l.Resolved {
			n++
		}
	}
	return n
}

// Write prints the links of p, one per line. Posts without links to show
// print nothing.
func Write(out io.Writer, p post.Post, resolved []links.Link, prefix string, unresolvedOnly bool) {
	var lines []string
	for _, l := range resolved {
		switch {
		case l.Resolved && !unresolvedOnly:
			lines = append(lines, fmt.Sprintf("  ✓ %s → %s", l.Href, post.Post{Path: l.Target}.URL(prefix)))
		case !l.Resolved:
			lines = append(lines, fmt.Sprintf("  ✗ %s", l.Href))
		}
	}
	if len(lines) == 0 {
		return
	}

	fmt.Fprintln(out, p.Path)
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
}

// WriteBacklinks prints the posts linking to node.
func WriteBacklinks(out io.Writer, node links.GraphNode, prefix string) {
	if len(node.Backlinks) == 0 {
		fmt.Fprintf(out, "No posts link to %s.\n", node.Path)
		return
	}
	fmt.Fprintln(out, node.Path)
	for _, from := range node.Backlinks {
		fmt.Fprintf(out, "  ← %s\n", post.Post{Path: from}.URL(prefix))
	}
}
