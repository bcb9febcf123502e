package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func AddTag(cmd *cobra.Command) {
	cmd.Flags().
		StringP(
			"tag",
			"t",
			"",
			"Only include posts carrying this tag",
		)
}

func HandleTag(cmd *cobra.Command) (string, error) {
	tag, err := cmd.Flags().GetString("tag")
	if err != nil {
		return "", fmt.Errorf("error retrieving tag flag: %w", err)
	}
	return strings.TrimPrefix(strings.TrimSpace(tag), "#"), nil
}
