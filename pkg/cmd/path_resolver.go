package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lazydino/lazyblog/internal/pathutil"
	"github.com/lazydino/lazyblog/internal/state"
)

// ResolvePostPath turns a command argument into a document path. The
// argument may be a document path, a content relative file name, a file path
// inside the content directory or a post URL carrying the route prefix.
func ResolvePostPath(s *state.State, arg string) (string, error) {
	if s == nil || s.Config == nil {
		return "", fmt.Errorf("state configuration is not initialized")
	}
	contentDir := filepath.Clean(s.ContentDir)
	if s.ContentDir == "" {
		return "", fmt.Errorf("content directory is not configured")
	}
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return "", fmt.Errorf("a path argument is required")
	}

	if filepath.IsAbs(arg) {
		if err := ensureWithinContent(contentDir, filepath.Clean(arg)); err == nil {
			return pathutil.DocumentPath(contentDir, arg, s.Config.Extension)
		}
	}

	rel := filepath.ToSlash(arg)
	if prefix := strings.TrimRight(s.Config.RoutePrefix, "/"); prefix != "" {
		rel = strings.TrimPrefix(rel, prefix+"/")
	}
	rel = strings.Trim(rel, "/")

	resolved := filepath.Join(contentDir, filepath.FromSlash(rel))
	if err := ensureWithinContent(contentDir, resolved); err != nil {
		return "", err
	}
	return pathutil.DocumentPath(contentDir, resolved, s.Config.Extension)
}

func ensureWithinContent(contentDir, resolved string) error {
	rel, err := filepath.Rel(contentDir, resolved)
	if err != nil {
		return fmt.Errorf("failed to resolve path %q relative to content %q: %w", resolved, contentDir, err)
	}

	if rel == "." {
		return fmt.Errorf("path %q is the content directory itself", resolved)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("path %q is outside the content directory %q", resolved, contentDir)
	}

	return nil
}
