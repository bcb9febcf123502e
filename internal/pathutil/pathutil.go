package pathutil

import (
	"path/filepath"
	"strings"
)

// NormalizePath converts Windows-style separators to the current platform's separator
// and cleans the resulting path.
func NormalizePath(p string) string {
	if p == "" {
		return ""
	}

	// Replace Windows separators and collapse redundant separators/segments.
	replaced := strings.ReplaceAll(p, "\\", "/")
	return filepath.Clean(filepath.FromSlash(replaced))
}

// ContentRelative returns the path to target relative to the provided content root.
// The returned path always uses forward slashes so it can double as a URL key.
func ContentRelative(root, target string) (string, error) {
	base := NormalizePath(root)
	cleanedTarget := NormalizePath(target)

	rel, err := filepath.Rel(base, cleanedTarget)
	if err != nil {
		return "", err
	}

	return filepath.ToSlash(rel), nil
}

// DocumentPath derives the document identifier for target: the content
// relative path with the extension stripped. The casing of every segment is
// preserved.
func DocumentPath(root, target, ext string) (string, error) {
	rel, err := ContentRelative(root, target)
	if err != nil {
		return "", err
	}

	rel = strings.TrimPrefix(rel, "./")
	if ext != "" && strings.EqualFold(filepath.Ext(rel), ext) {
		rel = rel[:len(rel)-len(ext)]
	}
	return rel, nil
}

// Segments splits a document path into its non-empty segments.
func Segments(docPath string) []string {
	parts := strings.Split(docPath, "/")
	out := parts[:0]
	for _, part := range parts {
		if part == "" || part == "." {
			continue
		}
		out = append(out, part)
	}
	return out
}

// Base returns the last segment of a slash separated path.
func Base(docPath string) string {
	trimmed := strings.TrimRight(docPath, "/")
	if idx := strings.LastIndex(trimmed, "/"); idx >= 0 {
		return trimmed[idx+1:]
	}
	return trimmed
}
