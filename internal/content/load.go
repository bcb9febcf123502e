// Package content walks a directory of markdown posts and turns it into an
// immutable snapshot of records.
package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lazydino/lazyblog/internal/constants"
	"github.com/lazydino/lazyblog/internal/logging"
	"github.com/lazydino/lazyblog/internal/pathutil"
	"github.com/lazydino/lazyblog/internal/post"
)

// Options controls a single load of the content tree.
type Options struct {
	Extension      string
	SummaryLength  int
	Concurrency    int
	IgnoredFolders []string
	Logger         logging.Logger

	readFile func(string) ([]byte, error)
	now      func() time.Time
}

func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.Extension) == "" {
		o.Extension = constants.DefaultExtension
	}
	if !strings.HasPrefix(o.Extension, ".") {
		o.Extension = "." + o.Extension
	}
	if o.SummaryLength <= 0 {
		o.SummaryLength = constants.DefaultSummaryLength
	}
	if o.Concurrency <= 0 {
		o.Concurrency = constants.DefaultConcurrency
	}
	o.Logger = logging.OrNoOp(o.Logger)
	if o.readFile == nil {
		o.readFile = os.ReadFile
	}
	if o.now == nil {
		o.now = time.Now
	}
	return o
}

type source struct {
	file    string
	docPath string
}

type outcome struct {
	post post.Post
	ok   bool
}

// Load reads every post below root. Unreadable or malformed files are logged
// and skipped; a missing root produces an empty snapshot. Only cancellation
// of ctx aborts the load.
func Load(ctx context.Context, root string, opts Options) (*Snapshot, error) {
	opts = opts.withDefaults()
	log := opts.Logger

	root = pathutil.NormalizePath(root)
	if root == "" {
		return nil, errors.New("content directory cannot be empty")
	}

	info, err := os.Stat(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Warn("content directory does not exist", "root", root)
		return newSnapshot(root, nil, 0, opts.now()), nil
	case err != nil:
		return nil, fmt.Errorf("stat content directory: %w", err)
	case !info.IsDir():
		return nil, fmt.Errorf("content path %s is not a directory", root)
	}

	sources, skipped, err := collectSources(ctx, root, opts)
	if err != nil {
		return nil, err
	}

	outcomes := make([]outcome, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := readPost(src, opts)
			if err != nil {
				log.Warn("skipping content file", "path", src.file, "error", err)
				return nil
			}
			outcomes[i] = outcome{post: p, ok: true}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	posts := make([]post.Post, 0, len(outcomes))
	for _, o := range outcomes {
		if !o.ok {
			skipped++
			continue
		}
		posts = append(posts, o.post)
	}

	log.Debug("content loaded", "root", root, "posts", len(posts), "skipped", skipped)
	return newSnapshot(root, posts, skipped, opts.now()), nil
}

func readPost(src source, opts Options) (post.Post, error) {
	data, err := opts.readFile(src.file)
	if err != nil {
		return post.Post{}, ioFailure(src.file, err)
	}
	p, err := post.Parse(src.docPath, data, post.Options{SummaryLength: opts.SummaryLength})
	if err != nil {
		return post.Post{}, parseFailure(src.file, err)
	}
	return p, nil
}

// collectSources walks root and returns the files to parse, sorted by file
// path. When two files map to the same document path the first one wins.
func collectSources(ctx context.Context, root string, opts Options) ([]source, int, error) {
	log := opts.Logger
	ignored := make(map[string]struct{}, len(opts.IgnoredFolders))
	for _, dir := range opts.IgnoredFolders {
		ignored[strings.ToLower(strings.TrimSpace(dir))] = struct{}{}
	}

	skipped := 0
	files := make([]string, 0)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			log.Warn("skipping unreadable entry", "path", path, "error", ioFailure(path, err))
			skipped++
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			name := strings.ToLower(d.Name())
			if strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if _, skip := ignored[name]; skip {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.EqualFold(filepath.Ext(d.Name()), opts.Extension) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, 0, ctxErr
		}
		return nil, 0, fmt.Errorf("walk content directory: %w", err)
	}

	sort.Strings(files)
	seen := make(map[string]string, len(files))
	sources := make([]source, 0, len(files))
	for _, file := range files {
		docPath, err := pathutil.DocumentPath(root, file, opts.Extension)
		if err != nil || docPath == "" {
			log.Warn("skipping file outside content directory", "path", file)
			skipped++
			continue
		}
		if first, dup := seen[docPath]; dup {
			log.Warn("skipping duplicate post path", "path", docPath, "file", file, "kept", first)
			skipped++
			continue
		}
		seen[docPath] = file
		sources = append(sources, source{file: file, docPath: docPath})
	}
	return sources, skipped, nil
}
