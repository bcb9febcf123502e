// Package note creates post files in the content directory.
package note

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrExists is returned when the post file is already present.
var ErrExists = errors.New("post already exists")

// Draft is a post that has not been written yet.
type Draft struct {
	ContentDir string
	DocPath    string
	Extension  string
}

// Filepath returns where the draft will be written.
func (d Draft) Filepath() string {
	return filepath.Join(d.ContentDir, filepath.FromSlash(d.DocPath)+d.Extension)
}

// Exists reports whether the post file is already present.
func (d Draft) Exists() (bool, error) {
	_, err := os.Stat(d.Filepath())
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// Write creates the post file with content and its parent folders. An
// existing file is never overwritten.
func (d Draft) Write(content string) (string, error) {
	path := d.Filepath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("create folder for %s: %w", d.DocPath, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return "", fmt.Errorf("%w: %s", ErrExists, path)
	}
	if err != nil {
		return "", err
	}
	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}
