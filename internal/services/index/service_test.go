package index

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/lazydino/lazyblog/internal/content"
)

func writeTestNote(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestServiceRebuildsAfterMarkStale(t *testing.T) {
	dir := t.TempDir()
	note := writeTestNote(t, dir, "note.md", "---\ntitle: First\n---\nOriginal content")

	svc := NewService(dir, content.Options{})
	snap, err := svc.AcquireSnapshot(context.Background())
	if err != nil {
		t.Fatalf("AcquireSnapshot returned error: %v", err)
	}
	if p, ok := snap.Lookup("note"); !ok || p.Title != "First" {
		t.Fatalf("expected initial post, got %+v", p)
	}

	if err := os.WriteFile(note, []byte("---\ntitle: Second\n---\nUpdated content"), 0o644); err != nil {
		t.Fatalf("rewrite note: %v", err)
	}

	svc.MarkStale("note.md")
	if got := svc.Stats().Pending; got != 1 {
		t.Fatalf("expected pending queue size 1, got %d", got)
	}

	updated, err := svc.AcquireSnapshot(context.Background())
	if err != nil {
		t.Fatalf("AcquireSnapshot after MarkStale returned error: %v", err)
	}
	if p, _ := updated.Lookup("note"); p.Title != "Second" {
		t.Fatalf("expected updated post, got %+v", p)
	}
	if p, _ := snap.Lookup("note"); p.Title != "First" {
		t.Fatalf("expected earlier snapshot to stay unchanged, got %+v", p)
	}

	stats := svc.Stats()
	if stats.Pending != 0 || stats.Rebuilds != 2 || stats.Posts != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestServiceReusesFreshSnapshot(t *testing.T) {
	dir := t.TempDir()
	writeTestNote(t, dir, "note.md", "content")

	calls := 0
	svc := NewService(dir, content.Options{})
	svc.load = func(ctx context.Context, root string, opts content.Options) (*content.Snapshot, error) {
		calls++
		return content.Load(ctx, root, opts)
	}

	first, err := svc.AcquireSnapshot(context.Background())
	if err != nil {
		t.Fatalf("AcquireSnapshot returned error: %v", err)
	}
	second, err := svc.AcquireSnapshot(context.Background())
	if err != nil {
		t.Fatalf("AcquireSnapshot returned error: %v", err)
	}
	if first != second || calls != 1 {
		t.Fatalf("expected shared snapshot and one load, got %d loads", calls)
	}
}

func TestServiceRebuildsWhenExpired(t *testing.T) {
	dir := t.TempDir()
	writeTestNote(t, dir, "note.md", "content")

	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc := NewService(dir, content.Options{})
	svc.now = func() time.Time { return current }
	svc.maxAge = time.Minute

	if _, err := svc.AcquireSnapshot(context.Background()); err != nil {
		t.Fatalf("AcquireSnapshot returned error: %v", err)
	}
	current = current.Add(2 * time.Minute)
	if _, err := svc.AcquireSnapshot(context.Background()); err != nil {
		t.Fatalf("AcquireSnapshot returned error: %v", err)
	}
	if got := svc.Stats().Rebuilds; got != 2 {
		t.Fatalf("expected expired snapshot to be rebuilt, got %d rebuilds", got)
	}
}

func TestServiceConcurrentReadersShareOneLoad(t *testing.T) {
	dir := t.TempDir()
	writeTestNote(t, dir, "note.md", "content")

	var mu sync.Mutex
	calls := 0
	svc := NewService(dir, content.Options{})
	svc.load = func(ctx context.Context, root string, opts content.Options) (*content.Snapshot, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return content.Load(ctx, root, opts)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.AcquireSnapshot(context.Background()); err != nil {
				t.Errorf("AcquireSnapshot returned error: %v", err)
			}
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Fatalf("expected a single load, got %d", calls)
	}
}

func TestServiceKeepsSnapshotOnLoadFailure(t *testing.T) {
	dir := t.TempDir()
	writeTestNote(t, dir, "note.md", "content")

	svc := NewService(dir, content.Options{})
	good, err := svc.AcquireSnapshot(context.Background())
	if err != nil {
		t.Fatalf("AcquireSnapshot returned error: %v", err)
	}

	boom := errors.New("boom")
	svc.load = func(context.Context, string, content.Options) (*content.Snapshot, error) {
		return nil, boom
	}
	svc.MarkStale("note.md")
	if _, err := svc.AcquireSnapshot(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected load error, got %v", err)
	}
	if svc.Stats().Pending != 1 {
		t.Fatalf("expected change to stay pending after a failed load")
	}

	svc.mu.RLock()
	kept := svc.snapshot
	svc.mu.RUnlock()
	if kept != good {
		t.Fatalf("expected previous snapshot to be kept")
	}
}

func TestServiceClosePreventsSnapshots(t *testing.T) {
	dir := t.TempDir()
	_ = writeTestNote(t, dir, "note.md", "content")

	svc := NewService(dir, content.Options{})
	if err := svc.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	if _, err := svc.AcquireSnapshot(context.Background()); err != ErrClosed {
		t.Fatalf("expected ErrClosed after Close, got %v", err)
	}
}
