package list

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lazydino/lazyblog/internal/config"
	"github.com/lazydino/lazyblog/internal/content"
	"github.com/lazydino/lazyblog/internal/logging"
	"github.com/lazydino/lazyblog/internal/post"
	"github.com/lazydino/lazyblog/internal/search"
	indexsvc "github.com/lazydino/lazyblog/internal/services/index"
	"github.com/lazydino/lazyblog/internal/state"
)

func writeNote(t testing.TB, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write file %s: %v", path, err)
	}
}

func newState(dir string) *state.State {
	return &state.State{
		Config:     config.Default(),
		ContentDir: dir,
		WorkDir:    dir,
		Logger:     logging.NoOp(),
		Matcher:    search.NewMatcher(search.Options{}),
		Index:      indexsvc.NewService(dir, content.Options{}),
	}
}

func TestListPrintsTableFilteredByTag(t *testing.T) {
	dir := t.TempDir()
	writeNote(t, dir, "react/basics.md", "---\ntitle: Learning React Basics\ntags: [react, web]\ncreatedAt: 2024-03-01\n---\nbody")
	writeNote(t, dir, "go/intro.md", "---\ntitle: Go Intro\ntags: [go]\n---\nbody")

	s := newState(dir)
	defer s.Close()

	cmd := NewCmdList(s)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--tag", "#react"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("list returned error: %v", err)
	}

	want := "PATH\tTITLE\tCREATED\tTAGS\nreact/basics\tLearning React Basics\t2024-03-01\treact, web\n"
	if out.String() != want {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestListRejectsUnknownSort(t *testing.T) {
	s := newState(t.TempDir())
	defer s.Close()

	cmd := NewCmdList(s)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--sort", "size"})
	if err := cmd.Execute(); err == nil {
		t.Fatalf("expected error for unknown sort")
	}
}

func TestListEmptyContent(t *testing.T) {
	dir := t.TempDir()
	s := newState(dir)
	defer s.Close()

	cmd := NewCmdList(s)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs(nil)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("list returned error: %v", err)
	}
	if !strings.HasPrefix(out.String(), "No posts found") {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestSortByCreatedNewestFirstUndatedLast(t *testing.T) {
	posts := []post.Post{
		{Path: "a", CreatedAt: ""},
		{Path: "b", CreatedAt: "2023-01-01"},
		{Path: "c", CreatedAt: "2024-06-01"},
	}
	Sort(posts, "created")
	if posts[0].Path != "c" || posts[1].Path != "b" || posts[2].Path != "a" {
		t.Fatalf("unexpected order %q %q %q", posts[0].Path, posts[1].Path, posts[2].Path)
	}
}

func TestSortByTitleIgnoresCase(t *testing.T) {
	posts := []post.Post{
		{Path: "1", Title: "zebra"},
		{Path: "2", Title: "Apple"},
		{Path: "3", Title: "banana"},
	}
	Sort(posts, "title")
	if posts[0].Title != "Apple" || posts[1].Title != "banana" || posts[2].Title != "zebra" {
		t.Fatalf("unexpected order %+v", posts)
	}
}
