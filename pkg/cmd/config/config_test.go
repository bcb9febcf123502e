package config

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lazydino/lazyblog/internal/config"
)

func TestShowListsEverySetting(t *testing.T) {
	var out bytes.Buffer
	if err := Show(&out, config.Default()); err != nil {
		t.Fatalf("Show returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != len(config.Keys) {
		t.Fatalf("expected %d lines, got %d: %q", len(config.Keys), len(lines), out.String())
	}
	if !strings.Contains(out.String(), "search.empty_query = none\n") {
		t.Fatalf("missing empty query policy in %q", out.String())
	}
}

func TestShowJoinsLists(t *testing.T) {
	cfg := config.Default()
	cfg.IgnoredFolders = []string{"drafts", "private"}

	var out bytes.Buffer
	if err := Show(&out, cfg); err != nil {
		t.Fatalf("Show returned error: %v", err)
	}
	if !strings.Contains(out.String(), "ignored_folders = drafts,private\n") {
		t.Fatalf("unexpected list format in %q", out.String())
	}
	if !strings.Contains(out.String(), "search.snippet_window = 40\n") {
		t.Fatalf("unexpected number format in %q", out.String())
	}
}

func TestChangeSettingThroughFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile returned error: %v", err)
	}
	if err := cfg.ChangeSetting("search.empty_query", "all"); err != nil {
		t.Fatalf("ChangeSetting returned error: %v", err)
	}

	reloaded, err := config.LoadFile(path)
	if err != nil {
		t.Fatalf("reload returned error: %v", err)
	}
	var out bytes.Buffer
	if err := Show(&out, reloaded); err != nil {
		t.Fatalf("Show returned error: %v", err)
	}
	if !strings.Contains(out.String(), "search.empty_query = all\n") {
		t.Fatalf("expected stored policy, got %q", out.String())
	}
}
