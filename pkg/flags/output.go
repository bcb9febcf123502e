package flags

import (
	"fmt"

	"github.com/spf13/cobra"
)

func AddOutput(cmd *cobra.Command) {
	cmd.Flags().
		StringP(
			"output",
			"o",
			"",
			"Write to this file instead of stdout",
		)
}

func HandleOutput(cmd *cobra.Command) (string, error) {
	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return "", fmt.Errorf("error retrieving output flag: %w", err)
	}
	return output, nil
}
