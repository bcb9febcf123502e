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
package show

import (
	"errors"
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/lazydino/lazyblog/internal/content"
	"github.com/lazydino/lazyblog/internal/fzf"
	"github.com/lazydino/lazyblog/internal/post"
	"github.com/lazydino/lazyblog/internal/render"
	"github.com/lazydino/lazyblog/internal/state"
	"github.com/lazydino/lazyblog/pkg/arg"
	cmdutil "github.com/lazydino/lazyblog/pkg/cmd"
)

// ErrNotFound is returned when no post exists at the requested path.
var ErrNotFound = errors.New("post not found")

// Options are the flags of the show command.
type Options struct {
	Raw  bool
	Copy bool
}

func NewCmdShow(s *state.State) *cobra.Command {
	var opts Options

	cmd := &cobra.Command{
		Use:     "show [path]",
		Aliases: []string{"cat", "o"},
		Short:   "Render a single post",
		Long: heredoc.Doc(`
			Renders one post in the terminal. The path may be the document path
			(guides/setup), the file name (guides/setup.md) or the post URL
			(/posts/guides/setup).

			Without a path a fuzzy finder opens over every post with a rendered
			preview.
		`),
		Example: heredoc.Doc(`
			lazyblog show guides/setup
			lazyblog show /posts/guides/setup --raw
			lazyblog show --copy
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, s, arg.HandlePath(args), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Raw, "raw", false, "Print the markdown body without rendering")
	cmd.Flags().BoolVarP(&opts.Copy, "copy", "y", false, "Copy the post URL to the clipboard")
	return cmd
}

func run(cmd *cobra.Command, s *state.State, path string, opts Options) error {
	snap, err := cmdutil.Snapshot(cmd, s)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var p post.Post
	if path == "" {
		p, err = fzf.NewFuzzyFinder(snap.Posts(), "Select a post").Run("")
		if errors.Is(err, fzf.ErrNoSelection) {
			fmt.Fprintln(out, "No post selected.")
			return nil
		}
		if err != nil {
			return err
		}
	} else {
		p, err = Find(s, snap, path)
		if err != nil {
			return err
		}
	}

	if opts.Copy {
		url := p.URL(s.Config.RoutePrefix)
		if err := clipboard.WriteAll(url); err != nil {
			return fmt.Errorf("failed to copy %s: %w", url, err)
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "Copied", url)
	}

	return Write(out, p, s.Config.RoutePrefix, opts.Raw, cmdutil.ColorEnabled(out), cmdutil.TerminalWidth(out, 0))
}

// Find resolves a command argument to a post of snap.
func Find(s *state.State, snap *content.Snapshot, target string) (post.Post, error) {
	docPath, err := cmdutil.ResolvePostPath(s, target)
	if err != nil {
		return post.Post{}, err
	}
	p, ok := snap.Lookup(docPath)
	if !ok {
		return post.Post{}, fmt.Errorf("%w: %s", ErrNotFound, docPath)
	}
	return p, nil
}

// Write prints p. Terminals get the glamour rendering, everything else the
// markdown body below a plain header.
func Write(out io.Writer, p post.Post, prefix string, raw, color bool, width int) error {
	if raw {
		_, err := io.WriteString(out, p.Body)
		return err
	}

	theme := render.NewTheme(color)
	fmt.Fprintln(out, theme.PostHeader(p, prefix))
	fmt.Fprintln(out)

	if !color {
		_, err := io.WriteString(out, p.Body)
		return err
	}

	if width > 4 {
		width -= 4
	}
	rendered, err := render.Markdown(p.Body, width)
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, rendered)
	return err
}
