package state

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"

	"github.com/lazydino/lazyblog/internal/constants"
	"github.com/lazydino/lazyblog/internal/pathutil"
)

// ContentChangedMsg reports a post file that was written, created, removed
// or renamed.
type ContentChangedMsg struct {
	Path string
}

type WatcherErrMsg struct {
	Err error
}

// ContentWatcher watches the content directory recursively.
type ContentWatcher struct {
	watcher   *fsnotify.Watcher
	root      string
	extension string
	done      chan struct{}
	once      sync.Once
	onChange  func(string)
	onClose   func()
}

func NewContentWatcher(root, extension string) (*ContentWatcher, error) {
	normalizedRoot := pathutil.NormalizePath(root)
	if normalizedRoot == "" {
		return nil, errors.New("content directory cannot be empty")
	}
	if extension == "" {
		extension = constants.DefaultExtension
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watcher := &ContentWatcher{
		watcher:   w,
		root:      normalizedRoot,
		extension: extension,
		done:      make(chan struct{}),
	}

	if err := watcher.addRecursive(normalizedRoot); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return watcher, nil
}

// Start returns a command that blocks until the next relevant change and
// reports it as a message. Re-issue the command after each message.
func (w *ContentWatcher) Start() tea.Cmd {
	if w == nil {
		return nil
	}

	return func() tea.Msg {
		for {
			select {
			case <-w.done:
				return nil
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}
				if rel, relevant := w.handle(event); relevant {
					return ContentChangedMsg{Path: rel}
				}
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				if err != nil {
					return WatcherErrMsg{Err: err}
				}
			}
		}
	}
}

// handle registers new directories and notifies the change callback. It
// reports whether the event concerns a post file.
func (w *ContentWatcher) handle(event fsnotify.Event) (string, bool) {
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			_ = w.addRecursive(event.Name)
			return "", false
		}
	}

	if !w.isRelevant(event) {
		return "", false
	}

	rel, err := w.relativePath(event.Name)
	if err != nil || rel == "" {
		return "", false
	}

	if w.onChange != nil {
		w.onChange(rel)
	}
	return rel, true
}

func (w *ContentWatcher) Close() error {
	if w == nil {
		return nil
	}

	var closeErr error
	w.once.Do(func() {
		close(w.done)
		closeErr = w.watcher.Close()
		if w.onClose != nil {
			w.onClose()
		}
	})

	return closeErr
}

// OnChange registers a callback that receives content relative paths
// whenever the watcher detects a relevant change.
func (w *ContentWatcher) OnChange(fn func(string)) {
	if w == nil {
		return
	}
	w.onChange = fn
}

// OnClose registers a callback that is invoked exactly once when the watcher
// shuts down.
func (w *ContentWatcher) OnClose(fn func()) {
	if w == nil {
		return
	}
	w.onClose = fn
}

func (w *ContentWatcher) addRecursive(root string) error {
	normalized := pathutil.NormalizePath(root)
	return filepath.WalkDir(normalized, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrPermission) {
				return filepath.SkipDir
			}
			return err
		}

		if !d.IsDir() {
			return nil
		}
		if path != normalized && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}

		return w.watcher.Add(path)
	})
}

func (w *ContentWatcher) isRelevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	rel, err := w.relativePath(event.Name)
	if err != nil || rel == "" {
		return false
	}

	return strings.EqualFold(filepath.Ext(rel), w.extension)
}

func (w *ContentWatcher) relativePath(path string) (string, error) {
	rel, err := pathutil.ContentRelative(w.root, path)
	if err != nil {
		return "", err
	}

	if rel == "." || rel == "" || strings.HasPrefix(rel, "..") {
		return "", nil
	}

	return rel, nil
}
