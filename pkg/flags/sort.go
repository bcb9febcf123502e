package flags

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// Sort orders accepted by --sort.
var Sorts = []string{"path", "title", "created"}

func AddSort(cmd *cobra.Command) {
	cmd.Flags().
		String(
			"sort",
			"path",
			"Order posts by "+strings.Join(Sorts, ", "),
		)
}

func HandleSort(cmd *cobra.Command) (string, error) {
	value, err := cmd.Flags().GetString("sort")
	if err != nil {
		return "", fmt.Errorf("error retrieving sort flag: %w", err)
	}
	value = strings.ToLower(strings.TrimSpace(value))
	for _, s := range Sorts {
		if s == value {
			return value, nil
		}
	}
	return "", fmt.Errorf("unknown sort %q, expected one of %s", value, strings.Join(Sorts, ", "))
}
