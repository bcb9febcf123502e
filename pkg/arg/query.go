package arg

import (
	"fmt"
	"strings"
)

// HandleQuery joins the positional arguments into one query. An empty query
// is allowed when allowEmpty is set.
func HandleQuery(args []string, allowEmpty bool) (string, error) {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" && !allowEmpty {
		return "", fmt.Errorf(
			"error: No query given. Try again",
		)
	}
	return query, nil
}

// HandlePath returns the optional first argument.
func HandlePath(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
