package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func nextMsg(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for watcher message")
		return nil
	}
}

func TestContentWatcherReportsPostChanges(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "guides"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	w, err := NewContentWatcher(dir, ".md")
	if err != nil {
		t.Fatalf("NewContentWatcher returned error: %v", err)
	}
	defer w.Close()

	changed := make(chan string, 8)
	w.OnChange(func(rel string) { changed <- rel })

	cmd := w.Start()
	if err := os.WriteFile(filepath.Join(dir, "ignored.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "guides", "setup.md"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	msg := nextMsg(t, cmd)
	changedMsg, ok := msg.(ContentChangedMsg)
	if !ok {
		t.Fatalf("expected ContentChangedMsg, got %T", msg)
	}
	if changedMsg.Path != "guides/setup.md" {
		t.Fatalf("unexpected path %q", changedMsg.Path)
	}
	if got := <-changed; got != "guides/setup.md" {
		t.Fatalf("unexpected callback path %q", got)
	}
}

func TestContentWatcherCloseRunsCallbackOnce(t *testing.T) {
	w, err := NewContentWatcher(t.TempDir(), "")
	if err != nil {
		t.Fatalf("NewContentWatcher returned error: %v", err)
	}

	calls := 0
	w.OnClose(func() { calls++ })
	if err := w.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	_ = w.Close()
	if calls != 1 {
		t.Fatalf("expected one close callback, got %d", calls)
	}
	if msg := w.Start()(); msg != nil {
		t.Fatalf("expected nil message after close, got %T", msg)
	}
}

func TestNewContentWatcherRejectsEmptyRoot(t *testing.T) {
	if _, err := NewContentWatcher("", ".md"); err == nil {
		t.Fatalf("expected error for empty root")
	}
}
