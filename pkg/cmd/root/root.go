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
package root

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lazydino/lazyblog/internal/constants"
	"github.com/lazydino/lazyblog/internal/state"
	cmdutil "github.com/lazydino/lazyblog/pkg/cmd"
	"github.com/lazydino/lazyblog/pkg/cmd/config"
	"github.com/lazydino/lazyblog/pkg/cmd/export"
	"github.com/lazydino/lazyblog/pkg/cmd/links"
	"github.com/lazydino/lazyblog/pkg/cmd/list"
	"github.com/lazydino/lazyblog/pkg/cmd/new"
	"github.com/lazydino/lazyblog/pkg/cmd/search"
	"github.com/lazydino/lazyblog/pkg/cmd/show"
	"github.com/lazydino/lazyblog/pkg/cmd/tags"
	"github.com/lazydino/lazyblog/pkg/cmd/tree"
)

func NewCmdRoot(s *state.State) (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:     constants.AppName,
		Version: constants.Version,
		Short:   "Browse, search and export a markdown blog from the terminal.",
		Long: heredoc.Doc(`
			lazyblog indexes a directory of markdown posts with front matter and
			lets you list, search, read and export them.

			  lazyblog list --sort created
			  lazyblog search react
			  lazyblog show guides/setup

			Run without a command in a terminal to open the search palette.
		`),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.Load(state.Options{
				ConfigPath: viper.GetString("config_file"),
				Viper:      viper.GetViper(),
				LogOutput:  cmd.ErrOrStderr(),
			})
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return s.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmdutil.ColorEnabled(cmd.OutOrStdout()) {
				return cmd.Help()
			}
			return search.RunPalette(cmd, s, "")
		},
	}

	cmd.PersistentFlags().
		StringP(
			"content",
			"c",
			"",
			"Content directory holding the posts",
		)
	cmd.PersistentFlags().String("config", "", "Config file (default ~/.lazyblog/config.yaml)")
	cmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")

	for key, flag := range map[string]string{
		"content_dir": "content",
		"config_file": "config",
		"log.level":   "log-level",
	} {
		if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
			return nil, err
		}
	}

	// Add Child Commands to Root
	cmd.AddCommand(
		list.NewCmdList(s),
		tree.NewCmdTree(s),
		search.NewCmdSearch(s),
		show.NewCmdShow(s),
		new.NewCmdNew(s),
		tags.NewCmdTags(s),
		links.NewCmdLinks(s),
		export.NewCmdExport(s),
		config.NewCmdConfig(s),
	)

	return cmd, nil
}
