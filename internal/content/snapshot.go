package content

import (
	"sort"
	"sync"
	"time"

	"github.com/lazydino/lazyblog/internal/post"
	"github.com/lazydino/lazyblog/internal/tree"
)

// Snapshot is the immutable result of one load. It is safe for concurrent
// use.
type Snapshot struct {
	root     string
	posts    []post.Post
	byPath   map[string]int
	skipped  int
	loadedAt time.Time

	treeOnce sync.Once
	tree     []*tree.Node
}

// NewSnapshot builds a snapshot from records that were obtained elsewhere.
// Records are sorted by path and later duplicates of a path are dropped.
func NewSnapshot(posts []post.Post) *Snapshot {
	return newSnapshot("", posts, 0, time.Now())
}

func newSnapshot(root string, posts []post.Post, skipped int, loadedAt time.Time) *Snapshot {
	sorted := make([]post.Post, 0, len(posts))
	for _, p := range posts {
		sorted = append(sorted, p.Clone())
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Path < sorted[j].Path })

	s := &Snapshot{
		root:     root,
		byPath:   make(map[string]int, len(sorted)),
		skipped:  skipped,
		loadedAt: loadedAt,
	}
	for _, p := range sorted {
		if _, dup := s.byPath[p.Path]; dup {
			s.skipped++
			continue
		}
		s.byPath[p.Path] = len(s.posts)
		s.posts = append(s.posts, p)
	}
	return s
}

// Root is the directory the snapshot was loaded from.
func (s *Snapshot) Root() string { return s.root }

// Posts returns copies of every record, ordered by path.
func (s *Snapshot) Posts() []post.Post {
	out := make([]post.Post, len(s.posts))
	for i, p := range s.posts {
		out[i] = p.Clone()
	}
	return out
}

func (s *Snapshot) Len() int { return len(s.posts) }

// Lookup returns the record stored at path. A missing record is reported
// through the boolean, never as an error.
func (s *Snapshot) Lookup(path string) (post.Post, bool) {
	i, ok := s.byPath[path]
	if !ok {
		return post.Post{}, false
	}
	return s.posts[i].Clone(), true
}

// Tree returns the folder hierarchy of the snapshot. The nodes are shared
// between callers and must not be modified.
func (s *Snapshot) Tree() []*tree.Node {
	s.treeOnce.Do(func() {
		s.tree = tree.Build(s.posts)
	})
	return s.tree
}

// Tags counts how many records carry each tag.
func (s *Snapshot) Tags() map[string]int {
	counts := make(map[string]int)
	for _, p := range s.posts {
		for _, tag := range p.Tags {
			counts[tag]++
		}
	}
	return counts
}

func (s *Snapshot) LoadedAt() time.Time { return s.loadedAt }

// Skipped is the number of files left out of the snapshot.
func (s *Snapshot) Skipped() int { return s.skipped }
