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
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lazydino/lazyblog/internal/config"
	"github.com/lazydino/lazyblog/internal/state"
	"github.com/lazydino/lazyblog/internal/tui/settings"
)

func NewCmdConfig(s *state.State) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Aliases: []string{"settings", "s"},
		Short:   "Show or change the stored settings",
		Long: heredoc.Docf(`
			Reads and writes the config file (~/.lazyblog/config.yaml unless
			--config is given). Values set through flags or LAZYBLOG_ environment
			variables are not stored.

			Keys: %s
		`, strings.Join(config.SortedKeys(), ", ")),
		// Only the stored file is needed, so a broken content setting can
		// still be fixed from here.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			home, err := state.GetHomeDir()
			if err != nil {
				return err
			}
			stored, err := state.LoadConfig(home, viper.GetString("config_file"))
			if err != nil {
				return err
			}
			s.Home = home
			s.Stored = stored
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return Show(cmd.OutOrStdout(), s.Stored)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print every stored setting",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return Show(cmd.OutOrStdout(), s.Stored)
			},
		},
		&cobra.Command{
			Use:     "set <key> <value>",
			Short:   "Change a stored setting",
			Example: "lazyblog config set search.empty_query all",
			Args:    cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := s.Stored.ChangeSetting(args[0], args[1]); err != nil {
					return err
				}
				value, _ := s.Stored.Get(args[0])
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], value)
				return nil
			},
		},
		&cobra.Command{
			Use:   "edit",
			Short: "Pick a setting and change it interactively",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				key, err := settings.NewEditor(s.Stored).Run()
				if errors.Is(err, settings.ErrAborted) {
					return nil
				}
				if err != nil {
					return err
				}
				value, _ := s.Stored.Get(key)
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", key, value)
				return nil
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the location of the config file",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), s.Stored.GetConfigPath())
				return nil
			},
		},
	)

	return cmd
}

// Show prints the stored settings as key = value lines.
func Show(out io.Writer, cfg *config.Config) error {
	for _, key := range config.SortedKeys() {
		value, _ := cfg.Get(key)
		if _, err := fmt.Fprintf(out, "%s = %s\n", key, value); err != nil {
			return err
		}
	}
	return nil
}
