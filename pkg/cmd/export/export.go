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
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/lazydino/lazyblog/internal/content"
	"github.com/lazydino/lazyblog/internal/links"
	"github.com/lazydino/lazyblog/internal/post"
	"github.com/lazydino/lazyblog/internal/state"
	"github.com/lazydino/lazyblog/internal/tree"
	cmdutil "github.com/lazydino/lazyblog/pkg/cmd"
	"github.com/lazydino/lazyblog/pkg/flags"
)

// Payload is the document served to the blog front end.
type Payload struct {
	Posts   []post.Post  `json:"posts"`
	Tree    []*tree.Node `json:"tree"`
	LinkMap links.Map    `json:"linkMap"`
}

func NewCmdExport(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the posts, folder tree and link map as JSON",
		Long: heredoc.Doc(`
			Writes the indexed content as one JSON document with the posts, the
			folder tree and the link map. Use --output to write a file; logs are
			never mixed into it.
		`),
		Example: heredoc.Doc(`
			lazyblog export -o public/posts.json
			lazyblog export | jq '.posts[].title'
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := flags.HandleOutput(cmd)
			if err != nil {
				return err
			}

			snap, err := cmdutil.Snapshot(cmd, s)
			if err != nil {
				return err
			}
			linkMap, err := s.LinkMap(snap)
			if err != nil {
				return err
			}

			payload := Build(snap, linkMap)
			if output == "" {
				return Write(cmd.OutOrStdout(), payload)
			}
			if err := WriteFile(output, payload); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d posts to %s\n", len(payload.Posts), output)
			return nil
		},
	}

	flags.AddOutput(cmd)
	return cmd
}

// Build assembles the payload for snap. Nil collections become empty ones so
// the JSON never carries null.
func Build(snap *content.Snapshot, linkMap links.Map) Payload {
	payload := Payload{
		Posts:   snap.Posts(),
		Tree:    snap.Tree(),
		LinkMap: linkMap,
	}
	if payload.Posts == nil {
		payload.Posts = []post.Post{}
	}
	if payload.Tree == nil {
		payload.Tree = []*tree.Node{}
	}
	if payload.LinkMap == nil {
		payload.LinkMap = links.Map{}
	}
	return payload
}

func Write(out io.Writer, payload Payload) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

// WriteFile writes payload to file, creating parent directories.
func WriteFile(file string, payload Payload) error {
	if dir := filepath.Dir(file); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", file, err)
	}
	if err := Write(f, payload); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
