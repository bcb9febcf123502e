package state

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"

	"github.com/lazydino/lazyblog/internal/config"
	"github.com/lazydino/lazyblog/internal/content"
	"github.com/lazydino/lazyblog/internal/links"
	"github.com/lazydino/lazyblog/internal/logging"
	"github.com/lazydino/lazyblog/internal/search"
	indexsvc "github.com/lazydino/lazyblog/internal/services/index"
)

type State struct {
	// Config holds the effective settings after flags and environment.
	Config *config.Config
	// Stored is the config file as written on disk.
	Stored     *config.Config
	Home       string
	WorkDir    string
	ContentDir string
	Logs       *logging.Provider
	Logger     logging.Logger
	Matcher    *search.Matcher
	Index      IndexService
	Watcher    *ContentWatcher
	RootStatus *RootStatus
}

type RootStatus struct {
	mu   sync.RWMutex
	line string
}

func (r *RootStatus) Set(line string) {
	r.mu.Lock()
	r.line = line
	r.mu.Unlock()
}

func (r *RootStatus) Value() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.line
}

// IndexService exposes the shared content snapshots produced by the index
// service.
type IndexService interface {
	AcquireSnapshot(ctx context.Context) (*content.Snapshot, error)
	MarkStale(string)
	Stats() indexsvc.Stats
	Close() error
}

// Options controls where NewState looks for its inputs.
type Options struct {
	// ConfigPath overrides ~/.lazyblog/config.yaml.
	ConfigPath string
	// Viper carries flag and environment overrides. The global instance is
	// used when nil.
	Viper *viper.Viper
	// WorkDir resolves relative content and link map paths. Defaults to the
	// current directory.
	WorkDir string
	// LogOutput receives log lines. Defaults to os.Stderr.
	LogOutput io.Writer
}

func NewState(opts Options) (*State, error) {
	s := &State{}
	if err := s.Load(opts); err != nil {
		return nil, err
	}
	return s, nil
}

// Load fills s from the config file, .env, environment and the flags bound
// to opts.Viper. Commands receive the State before flags are parsed and call
// Load from the root command's pre-run hook.
func (s *State) Load(opts Options) error {
	home, err := GetHomeDir()
	if err != nil {
		return err
	}

	workDir := opts.WorkDir
	if workDir == "" {
		if workDir, err = os.Getwd(); err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
	}

	if err := config.LoadDotEnv(workDir); err != nil {
		return err
	}

	stored, err := LoadConfig(home, opts.ConfigPath)
	if err != nil {
		return err
	}

	v := opts.Viper
	if v == nil {
		v = viper.GetViper()
	}
	config.BindEnv(v)

	cfg, err := stored.Resolve(v)
	if err != nil {
		return err
	}

	logs, err := logging.NewProvider(logging.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: opts.LogOutput,
	})
	if err != nil {
		return err
	}

	emptyQuery, err := search.ParseEmptyQueryPolicy(cfg.Search.EmptyQuery)
	if err != nil {
		return err
	}

	contentDir := resolvePath(workDir, cfg.ContentDir)
	indexService := indexsvc.NewService(contentDir, content.Options{
		Extension:      cfg.Extension,
		SummaryLength:  cfg.SummaryLength,
		Concurrency:    cfg.Concurrency,
		IgnoredFolders: append([]string(nil), cfg.IgnoredFolders...),
		Logger:         logs.GetLogger("content"),
	})

	if s.Index != nil {
		_ = s.Index.Close()
	}
	s.Config = cfg
	s.Stored = stored
	s.Home = home
	s.WorkDir = workDir
	s.ContentDir = contentDir
	s.Logs = logs
	s.Logger = logs.GetLogger("lazyblog")
	s.Matcher = search.NewMatcher(search.Options{
		EmptyQuery:    emptyQuery,
		SnippetWindow: cfg.Search.SnippetWindow,
	})
	s.Index = indexService
	if s.RootStatus == nil {
		s.RootStatus = &RootStatus{}
	}
	return nil
}

func GetHomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory. err: %s", err)
	}

	return home, nil
}

// LoadConfig reads the config file, creating the default one under home when
// no explicit path is given.
func LoadConfig(home, path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}

	if err := config.EnsureConfigExists(home); err != nil {
		return nil, err
	}
	return config.Load(home)
}

func resolvePath(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// Snapshot returns the current content snapshot.
func (s *State) Snapshot(ctx context.Context) (*content.Snapshot, error) {
	if s == nil || s.Index == nil {
		return nil, indexsvc.ErrUnavailable
	}
	return s.Index.AcquireSnapshot(ctx)
}

// LinkMap returns the published link map layered over the map derived from
// the snapshot, so unpublished builds still resolve their own posts.
func (s *State) LinkMap(snap *content.Snapshot) (links.Map, error) {
	published, err := links.LoadMap(resolvePath(s.WorkDir, s.Config.LinkMap))
	if err != nil {
		return nil, err
	}
	return links.Build(snap).Merge(published), nil
}

// Watch starts watching the content directory and feeds changes into the
// index service. Calling it again returns the existing watcher.
func (s *State) Watch() (*ContentWatcher, error) {
	if s.Watcher != nil {
		return s.Watcher, nil
	}

	watcher, err := NewContentWatcher(s.ContentDir, s.Config.Extension)
	if err != nil {
		return nil, fmt.Errorf("failed to create content watcher: %w", err)
	}

	index := s.Index
	watcher.OnChange(func(rel string) {
		if index != nil {
			s.Logger.Debug("content changed", "path", rel)
			index.MarkStale(rel)
		}
	})

	s.Watcher = watcher
	return watcher, nil
}

// Close releases resources associated with the state, including the content
// watcher and shared index service.
func (s *State) Close() error {
	if s == nil {
		return nil
	}

	var errs []error
	if s.Watcher != nil {
		if err := s.Watcher.Close(); err != nil {
			errs = append(errs, err)
		}
		s.Watcher = nil
	}
	if s.Index != nil {
		if err := s.Index.Close(); err != nil && !errors.Is(err, indexsvc.ErrClosed) {
			errs = append(errs, err)
		}
		s.Index = nil
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}
