package content

import (
	"testing"

	"github.com/lazydino/lazyblog/internal/post"
)

func TestSnapshotLookupMissing(t *testing.T) {
	snap := NewSnapshot([]post.Post{{Path: "a", Title: "A"}})
	p, ok := snap.Lookup("nope")
	if ok {
		t.Fatalf("expected absence, got %+v", p)
	}
	if p.Path != "" || p.Title != "" {
		t.Fatalf("expected zero record, got %+v", p)
	}
}

func TestSnapshotReturnsCopies(t *testing.T) {
	snap := NewSnapshot([]post.Post{{Path: "a", Tags: []string{"go"}}})

	posts := snap.Posts()
	posts[0].Tags[0] = "mutated"
	posts[0].Title = "mutated"

	again, _ := snap.Lookup("a")
	if again.Tags[0] != "go" || again.Title != "" {
		t.Fatalf("snapshot was modified through a copy: %+v", again)
	}
}

func TestSnapshotDropsDuplicatePaths(t *testing.T) {
	snap := NewSnapshot([]post.Post{{Path: "b"}, {Path: "a", Title: "first"}, {Path: "a", Title: "second"}})
	if snap.Len() != 2 || snap.Skipped() != 1 {
		t.Fatalf("expected 2 posts and 1 skipped, got %d and %d", snap.Len(), snap.Skipped())
	}
	p, _ := snap.Lookup("a")
	if p.Title != "first" {
		t.Fatalf("expected first record to win, got %q", p.Title)
	}
}

func TestSnapshotTreeIsMemoised(t *testing.T) {
	snap := NewSnapshot([]post.Post{{Path: "x/y"}, {Path: "z"}})
	first := snap.Tree()
	second := snap.Tree()
	if len(first) != 2 || &first[0] != &second[0] {
		t.Fatalf("expected the same memoised forest")
	}
}
