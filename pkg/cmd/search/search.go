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
package search

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/lazydino/lazyblog/internal/post"
	"github.com/lazydino/lazyblog/internal/render"
	"github.com/lazydino/lazyblog/internal/search"
	"github.com/lazydino/lazyblog/internal/state"
	"github.com/lazydino/lazyblog/internal/tui/palette"
	"github.com/lazydino/lazyblog/pkg/arg"
	cmdutil "github.com/lazydino/lazyblog/pkg/cmd"
)

func NewCmdSearch(s *state.State) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:     "search [query]",
		Aliases: []string{"find", "f"},
		Short:   "Search posts by title, body, Hangul initials or tag",
		Long: heredoc.Doc(`
			Matches the query against every post, ignoring case. A post matches when
			its title or body contains the query, when the query's letters appear in
			order in the decomposed title or body (so hw finds Hello World and the
			Korean initials ㄹㅇㅌ find 리액트), or when one of its tags matches the
			query either way. Results keep the post order.

			An empty query returns no posts unless search.empty_query is "all".
		`),
		Example: heredoc.Doc(`
			lazyblog search react
			lazyblog search ㄹㅇㅌ
			lazyblog search -i
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			allowEmpty := interactive || s.Matcher.Options().EmptyQuery == search.EmptyMatchesAll
			query, err := arg.HandleQuery(args, allowEmpty)
			if err != nil {
				return err
			}
			if interactive {
				return RunPalette(cmd, s, query)
			}
			return run(cmd, s, query)
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Open the interactive search palette")
	return cmd
}

func run(cmd *cobra.Command, s *state.State, query string) error {
	snap, err := cmdutil.Snapshot(cmd, s)
	if err != nil {
		return err
	}

	results := s.Matcher.Match(query, snap.Posts())
	out := cmd.OutOrStdout()
	if len(results) == 0 {
		fmt.Fprintf(out, "No posts match %q.\n", query)
		return nil
	}

	Write(out, results, render.NewTheme(cmdutil.ColorEnabled(out)), s.Config.RoutePrefix)
	fmt.Fprintf(out, "\n%d of %d posts\n", len(results), snap.Len())
	return nil
}

// Write prints one block per result separated by blank lines.
func Write(out io.Writer, results []search.Result, theme render.Theme, prefix string) {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, theme.Result(r, prefix))
	}
}

// RunPalette opens the interactive palette and prints the URL of the chosen
// post.
func RunPalette(cmd *cobra.Command, s *state.State, query string) error {
	opts := palette.Options{
		Query:       query,
		RoutePrefix: s.Config.RoutePrefix,
		Heartbeat:   s.SnapshotStatusCmd(),
	}

	watcher, err := s.Watch()
	if err != nil {
		s.Logger.Warn("live reload disabled", "error", err)
	} else {
		opts.Watch = watcher.Start()
	}

	selected, ok, err := palette.Run(palette.New(s.Index, s.Matcher, opts))
	if err != nil {
		return err
	}
	if ok {
		printSelection(cmd.OutOrStdout(), selected, s.Config.RoutePrefix)
	}
	return nil
}

func printSelection(out io.Writer, p post.Post, prefix string) {
	fmt.Fprintln(out, p.URL(prefix))
}
