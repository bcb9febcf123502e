package index

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/lazydino/lazyblog/internal/content"
	"github.com/lazydino/lazyblog/internal/logging"
	"github.com/lazydino/lazyblog/internal/pathutil"
)

// ErrClosed signals that the index service has been shut down and cannot be
// used to produce new snapshots.
var ErrClosed = errors.New("index service closed")

// ErrUnavailable indicates that no snapshot could be produced.
var ErrUnavailable = errors.New("content snapshot unavailable")

// Stats captures lightweight instrumentation about the shared snapshot.
type Stats struct {
	LastRebuild time.Time
	Pending     int
	Posts       int
	Skipped     int
	Rebuilds    int
}

// Loader produces a fresh snapshot of the content tree.
type Loader func(ctx context.Context, root string, opts content.Options) (*content.Snapshot, error)

// Service owns the current content snapshot for a blog and swaps in a new
// one when the watcher reports changes or the snapshot gets too old.
type Service struct {
	mu          sync.RWMutex
	root        string
	opts        content.Options
	snapshot    *content.Snapshot
	pending     map[string]struct{}
	generation  int
	built       int
	lastRebuild time.Time
	rebuilds    int
	closed      bool

	// rebuildMu serialises loads so concurrent readers share one rebuild.
	rebuildMu sync.Mutex

	now    func() time.Time
	load   Loader
	maxAge time.Duration
	log    logging.Logger
}

// NewService constructs a service rooted at the content directory. Every
// rebuild parses the content tree from scratch.
func NewService(root string, opts content.Options) *Service {
	return &Service{
		root:    pathutil.NormalizePath(root),
		opts:    opts,
		pending: make(map[string]struct{}),
		now:     time.Now,
		load:    content.Load,
		maxAge:  time.Hour,
		log:     logging.OrNoOp(opts.Logger),
	}
}

// Root returns the content directory the service loads from.
func (s *Service) Root() string {
	if s == nil {
		return ""
	}
	return s.root
}

// AcquireSnapshot returns the current snapshot, rebuilding it first when it
// is missing, stale or older than the maximum age. Snapshots are immutable
// and shared between callers.
func (s *Service) AcquireSnapshot(ctx context.Context) (*content.Snapshot, error) {
	if s == nil {
		return nil, ErrUnavailable
	}

	if err := s.ensureFresh(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}
	if s.snapshot == nil {
		return nil, ErrUnavailable
	}
	return s.snapshot, nil
}

// MarkStale records that rel changed on disk. The next AcquireSnapshot
// reloads the content tree.
func (s *Service) MarkStale(rel string) {
	if s == nil {
		return
	}

	trimmed := strings.TrimSpace(rel)
	if trimmed == "" {
		trimmed = "."
	}
	normalized := filepath.ToSlash(trimmed)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	if s.pending == nil {
		s.pending = make(map[string]struct{})
	}
	s.pending[normalized] = struct{}{}
	s.generation++
}

// Stats returns instrumentation about the snapshot lifecycle.
func (s *Service) Stats() Stats {
	if s == nil {
		return Stats{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{LastRebuild: s.lastRebuild, Pending: len(s.pending), Rebuilds: s.rebuilds}
	if s.snapshot != nil {
		stats.Posts = s.snapshot.Len()
		stats.Skipped = s.snapshot.Skipped()
	}
	return stats
}

// Close releases the service. Subsequent calls to AcquireSnapshot will return
// ErrClosed.
func (s *Service) Close() error {
	if s == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.snapshot = nil
	s.pending = nil
	return nil
}

func (s *Service) needsRebuild() (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false, ErrClosed
	}
	if s.snapshot == nil || s.generation != s.built {
		return true, nil
	}
	return s.maxAge > 0 && s.now().Sub(s.lastRebuild) > s.maxAge, nil
}

func (s *Service) ensureFresh(ctx context.Context) error {
	if s == nil {
		return ErrUnavailable
	}

	needed, err := s.needsRebuild()
	if err != nil || !needed {
		return err
	}

	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	// Another caller may have rebuilt while this one waited.
	needed, err = s.needsRebuild()
	if err != nil || !needed {
		return err
	}
	return s.rebuild(ctx)
}

func (s *Service) rebuild(ctx context.Context) error {
	if s.root == "" {
		return errors.New("content directory cannot be empty")
	}

	s.mu.RLock()
	generation := s.generation
	pending := len(s.pending)
	s.mu.RUnlock()

	snap, err := s.load(ctx, s.root, s.opts)
	if err != nil {
		return fmt.Errorf("load content snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	s.snapshot = snap
	s.built = generation
	s.lastRebuild = s.now()
	s.rebuilds++
	if s.generation == generation {
		s.pending = make(map[string]struct{})
	}

	s.log.Debug("content snapshot rebuilt", "posts", snap.Len(), "skipped", snap.Skipped(), "changes", pending)
	return nil
}
