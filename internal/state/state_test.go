package state

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"

	"github.com/lazydino/lazyblog/internal/config"
	"github.com/lazydino/lazyblog/internal/logging"
	"github.com/lazydino/lazyblog/internal/search"
)

func TestNewStateLoadsContentFromWorkDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	work := t.TempDir()
	post := filepath.Join(work, "content", "posts", "hello.md")
	if err := os.MkdirAll(filepath.Dir(post), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(post, []byte("---\ntitle: Hello\n---\nbody"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(work, ".env"), []byte("LAZYBLOG_SEARCH_EMPTY_QUERY=all\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("LAZYBLOG_SEARCH_EMPTY_QUERY", "")
	os.Unsetenv("LAZYBLOG_SEARCH_EMPTY_QUERY")

	st, err := NewState(Options{Viper: viper.New(), WorkDir: work})
	if err != nil {
		t.Fatalf("NewState returned error: %v", err)
	}
	defer st.Close()

	if _, err := os.Stat(filepath.Join(home, ".lazyblog", "config.yaml")); err != nil {
		t.Fatalf("expected default config to be written: %v", err)
	}
	if st.Matcher.Options().EmptyQuery != search.EmptyMatchesAll {
		t.Fatalf("expected .env override to reach the matcher")
	}

	snap, err := st.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot returned error: %v", err)
	}
	if p, ok := snap.Lookup("hello"); !ok || p.Title != "Hello" {
		t.Fatalf("expected hello post, got %+v", p)
	}

	m, err := st.LinkMap(snap)
	if err != nil {
		t.Fatalf("LinkMap returned error: %v", err)
	}
	if target, ok := m.Resolve("hello.md"); !ok || target != "hello" {
		t.Fatalf("expected derived link map entry, got %q", target)
	}
}

type recordingIndex struct {
	stubIndexService
	stale []string
}

func (r *recordingIndex) MarkStale(rel string) { r.stale = append(r.stale, rel) }

func TestStateWatchFeedsIndex(t *testing.T) {
	svc := &recordingIndex{}
	st := &State{
		Config:     config.Default(),
		ContentDir: t.TempDir(),
		Logger:     logging.NoOp(),
		Index:      svc,
		RootStatus: &RootStatus{},
	}

	w, err := st.Watch()
	if err != nil {
		t.Fatalf("Watch returned error: %v", err)
	}
	defer st.Close()

	again, err := st.Watch()
	if err != nil || again != w {
		t.Fatalf("expected Watch to reuse the watcher")
	}

	w.onChange("a.md")
	if len(svc.stale) != 1 || svc.stale[0] != "a.md" {
		t.Fatalf("expected change to reach the index, got %v", svc.stale)
	}
}
