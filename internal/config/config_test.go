package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/lazydino/lazyblog/internal/config"
	"github.com/lazydino/lazyblog/internal/constants"
)

func writeConfig(t *testing.T, home string, data map[string]any) {
	t.Helper()
	configPath := config.GetConfigPath(home)
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		t.Fatalf("failed to create config directory: %v", err)
	}
	raw, err := yaml.Marshal(data)
	if err != nil {
		t.Fatalf("failed to marshal config data: %v", err)
	}
	if err := os.WriteFile(configPath, raw, 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(t.TempDir())
	if err != nil {
		t.Fatalf("expected load to succeed: %v", err)
	}
	if cfg.ContentDir != constants.DefaultContentDir || cfg.Extension != ".md" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.Search.EmptyQuery != "none" || cfg.Search.SnippetWindow != constants.DefaultSnippetWindow {
		t.Fatalf("unexpected search defaults %+v", cfg.Search)
	}
	if cfg.IgnoredFolders == nil {
		t.Fatalf("expected non-nil ignored folders")
	}
}

func TestLoadReadsFileValues(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, map[string]any{
		"content_dir":     "posts",
		"extension":       "markdown",
		"summary_length":  80,
		"ignored_folders": []string{"drafts"},
		"search":          map[string]any{"empty_query": "all"},
	})

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("expected load to succeed: %v", err)
	}
	if cfg.ContentDir != "posts" || cfg.Extension != ".markdown" || cfg.SummaryLength != 80 {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if !slices.Equal(cfg.IgnoredFolders, []string{"drafts"}) || cfg.Search.EmptyQuery != "all" {
		t.Fatalf("unexpected config %+v", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]any{
		"empty query": {"search": map[string]any{"empty_query": "sometimes"}},
		"log level":   {"log": map[string]any{"level": "loud"}},
		"log format":  {"log": map[string]any{"format": "xml"}},
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			home := t.TempDir()
			writeConfig(t, home, data)

			_, err := config.Load(home)
			var verr *config.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestEnsureConfigExistsWritesDefaults(t *testing.T) {
	home := t.TempDir()
	if err := config.EnsureConfigExists(home); err != nil {
		t.Fatalf("EnsureConfigExists returned error: %v", err)
	}
	if _, err := os.Stat(config.GetConfigPath(home)); err != nil {
		t.Fatalf("expected config file: %v", err)
	}

	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("expected load to succeed: %v", err)
	}
	if cfg.RoutePrefix != constants.DefaultRoutePrefix {
		t.Fatalf("unexpected route prefix %q", cfg.RoutePrefix)
	}
}

func TestChangeSettingPersists(t *testing.T) {
	home := t.TempDir()
	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("expected load to succeed: %v", err)
	}

	if err := cfg.ChangeSetting("summary_length", "42"); err != nil {
		t.Fatalf("ChangeSetting returned error: %v", err)
	}
	if err := cfg.ChangeSetting("ignored_folders", "drafts, private"); err != nil {
		t.Fatalf("ChangeSetting returned error: %v", err)
	}
	if err := cfg.ChangeSetting("summary_length", "-1"); err == nil {
		t.Fatalf("expected error for negative number")
	}
	if err := cfg.ChangeSetting("nope", "x"); err == nil {
		t.Fatalf("expected error for unknown key")
	}

	reloaded, err := config.Load(home)
	if err != nil {
		t.Fatalf("expected reload to succeed: %v", err)
	}
	if reloaded.SummaryLength != 42 || !slices.Equal(reloaded.IgnoredFolders, []string{"drafts", "private"}) {
		t.Fatalf("unexpected reloaded config %+v", reloaded)
	}
}

func TestResolveLayersEnvironmentOverFile(t *testing.T) {
	home := t.TempDir()
	writeConfig(t, home, map[string]any{"content_dir": "from-file", "route_prefix": "/blog/"})
	cfg, err := config.Load(home)
	if err != nil {
		t.Fatalf("expected load to succeed: %v", err)
	}

	t.Setenv("LAZYBLOG_CONTENT_DIR", "from-env")
	t.Setenv("LAZYBLOG_SEARCH_EMPTY_QUERY", "all")

	v := viper.New()
	config.BindEnv(v)
	resolved, err := cfg.Resolve(v)
	if err != nil {
		t.Fatalf("Resolve returned error: %v", err)
	}
	if resolved.ContentDir != "from-env" || resolved.Search.EmptyQuery != "all" {
		t.Fatalf("expected environment overrides, got %+v", resolved)
	}
	if resolved.RoutePrefix != "/blog/" {
		t.Fatalf("expected file value to survive, got %q", resolved.RoutePrefix)
	}
	if cfg.ContentDir != "from-file" {
		t.Fatalf("Resolve must not modify the loaded config")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := config.LoadDotEnv(dir); err != nil {
		t.Fatalf("missing .env should be ignored: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("LAZYBLOG_TEST_DOTENV=loaded\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Setenv("LAZYBLOG_TEST_DOTENV", "")
	os.Unsetenv("LAZYBLOG_TEST_DOTENV")

	if err := config.LoadDotEnv(dir); err != nil {
		t.Fatalf("LoadDotEnv returned error: %v", err)
	}
	if got := os.Getenv("LAZYBLOG_TEST_DOTENV"); got != "loaded" {
		t.Fatalf("expected variable from .env, got %q", got)
	}
}
