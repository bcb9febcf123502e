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
package new

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/lazydino/lazyblog/internal/constants"
	"github.com/lazydino/lazyblog/internal/note"
	"github.com/lazydino/lazyblog/internal/pathutil"
	"github.com/lazydino/lazyblog/internal/post"
	"github.com/lazydino/lazyblog/internal/state"
	"github.com/lazydino/lazyblog/internal/templater"
	cmdutil "github.com/lazydino/lazyblog/pkg/cmd"
)

// Options are the flags of the new command.
type Options struct {
	Title    string
	Template string
	now      func() time.Time
}

func NewCmdNew(s *state.State) *cobra.Command {
	opts := Options{now: time.Now}

	cmd := &cobra.Command{
		Use:     "new <path> [tags]",
		Aliases: []string{"n"},
		Short:   "Create a new post from a template",
		Long: heredoc.Doc(`
			Creates a post file in the content directory with front matter filled
			in from the arguments. Tags are given as one space separated argument.

			Templates named *.tmpl in ~/.lazyblog/templates take precedence over
			the built in "post" (YAML) and "post-toml" (TOML) templates.
		`),
		Example: heredoc.Doc(`
			lazyblog new react/hooks "react web"
			lazyblog new notes/today --title "Today I learned" -t post-toml
		`),
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tags []string
			if len(args) > 1 {
				tags = strings.Fields(args[1])
			}
			path, err := run(s, args[0], tags, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Created", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Title, "title", "", "Post title (default: the last path segment)")
	cmd.Flags().StringVarP(&opts.Template, "template", "t", templater.DefaultTemplate, "Template to render")
	return cmd
}

func run(s *state.State, target string, tags []string, opts Options) (string, error) {
	docPath, err := cmdutil.ResolvePostPath(s, target)
	if err != nil {
		return "", err
	}

	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = pathutil.Base(docPath)
	}

	t, err := templater.New(filepath.Join(s.Home, constants.ConfigDir, "templates"))
	if err != nil {
		return "", err
	}
	rendered, err := t.Execute(opts.Template, templater.NewPostData(title, tags, opts.now()))
	if err != nil {
		return "", err
	}
	if _, err := post.Parse(docPath, []byte(rendered), post.Options{}); err != nil {
		return "", fmt.Errorf("template %q produced invalid front matter: %w", opts.Template, err)
	}

	draft := note.Draft{ContentDir: s.ContentDir, DocPath: docPath, Extension: s.Config.Extension}
	path, err := draft.Write(rendered)
	if err != nil {
		return "", err
	}

	if s.Index != nil {
		s.Index.MarkStale(docPath)
	}
	return path, nil
}
