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
package tree

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/lazydino/lazyblog/internal/state"
	foldertree "github.com/lazydino/lazyblog/internal/tree"
	cmdutil "github.com/lazydino/lazyblog/pkg/cmd"
)

func NewCmdTree(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the folder tree of the content directory",
		Long: heredoc.Doc(`
			Prints the folder hierarchy derived from the post paths. Folders are
			listed before files and both are sorted alphabetically. A folder that
			shares its name with a post is marked with *.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := cmdutil.Snapshot(cmd, s)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			nodes := snap.Tree()
			if err := foldertree.Render(out, nodes); err != nil {
				return err
			}

			folders, files := foldertree.Count(nodes)
			fmt.Fprintf(out, "\n%d folders, %d posts\n", folders, files)
			return nil
		},
	}

	return cmd
}
