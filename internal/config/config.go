package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/lazydino/lazyblog/internal/constants"
	"github.com/lazydino/lazyblog/internal/logging"
	"github.com/lazydino/lazyblog/internal/search"
)

type SearchConfig struct {
	EmptyQuery    string `yaml:"empty_query"    json:"empty_query"`
	SnippetWindow int    `yaml:"snippet_window" json:"snippet_window"`
}

type LogConfig struct {
	Level  string `yaml:"level"  json:"level"`
	Format string `yaml:"format" json:"format"`
}

type Config struct {
	ContentDir     string       `yaml:"content_dir"     json:"content_dir"`
	Extension      string       `yaml:"extension"       json:"extension"`
	SummaryLength  int          `yaml:"summary_length"  json:"summary_length"`
	RoutePrefix    string       `yaml:"route_prefix"    json:"route_prefix"`
	LinkMap        string       `yaml:"link_map"        json:"link_map"`
	Concurrency    int          `yaml:"concurrency"     json:"concurrency"`
	IgnoredFolders []string     `yaml:"ignored_folders" json:"ignored_folders"`
	Search         SearchConfig `yaml:"search"          json:"search"`
	Log            LogConfig    `yaml:"log"             json:"log"`

	path string `yaml:"-"`
}

// Keys lists every setting that can be changed with ChangeSetting, in the
// dotted form used by viper and the config file.
var Keys = []string{
	"content_dir",
	"extension",
	"summary_length",
	"route_prefix",
	"link_map",
	"concurrency",
	"ignored_folders",
	"search.empty_query",
	"search.snippet_window",
	"log.level",
	"log.format",
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.ensureDefaults()
	return cfg
}

func (cfg *Config) ensureDefaults() {
	if strings.TrimSpace(cfg.ContentDir) == "" {
		cfg.ContentDir = constants.DefaultContentDir
	}
	if strings.TrimSpace(cfg.Extension) == "" {
		cfg.Extension = constants.DefaultExtension
	}
	if !strings.HasPrefix(cfg.Extension, ".") {
		cfg.Extension = "." + cfg.Extension
	}
	if cfg.SummaryLength <= 0 {
		cfg.SummaryLength = constants.DefaultSummaryLength
	}
	if strings.TrimSpace(cfg.RoutePrefix) == "" {
		cfg.RoutePrefix = constants.DefaultRoutePrefix
	}
	if strings.TrimSpace(cfg.LinkMap) == "" {
		cfg.LinkMap = constants.DefaultLinkMap
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = constants.DefaultConcurrency
	}
	if cfg.IgnoredFolders == nil {
		cfg.IgnoredFolders = []string{}
	}
	if strings.TrimSpace(cfg.Search.EmptyQuery) == "" {
		cfg.Search.EmptyQuery = string(search.EmptyMatchesNone)
	}
	if cfg.Search.SnippetWindow <= 0 {
		cfg.Search.SnippetWindow = constants.DefaultSnippetWindow
	}
	if strings.TrimSpace(cfg.Log.Level) == "" {
		cfg.Log.Level = "warn"
	}
	if strings.TrimSpace(cfg.Log.Format) == "" {
		cfg.Log.Format = "console"
	}
}

// Validate reports the first setting that cannot be used.
func (cfg *Config) Validate() error {
	if _, err := search.ParseEmptyQueryPolicy(cfg.Search.EmptyQuery); err != nil {
		return &ValidationError{Key: "search.empty_query", Err: err}
	}
	if !logging.ValidLevel(cfg.Log.Level) {
		return &ValidationError{Key: "log.level", Err: fmt.Errorf("unknown level %q", cfg.Log.Level)}
	}
	if !logging.ValidFormat(cfg.Log.Format) {
		return &ValidationError{Key: "log.format", Err: fmt.Errorf("unknown format %q", cfg.Log.Format)}
	}
	return nil
}

// Load reads the config file below home. A missing or empty file yields the
// defaults.
func Load(home string) (*Config, error) {
	return LoadFile(GetConfigPath(home))
}

// LoadFile reads the config file at path.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	if len(strings.TrimSpace(string(data))) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.path = path
	cfg.ensureDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetConfigPath is where Save writes the configuration.
func (cfg *Config) GetConfigPath() string {
	return cfg.path
}

// Save writes the configuration back to its file.
func (cfg *Config) Save() error {
	if cfg.path == "" {
		return &ValidationError{Key: "path", Err: fmt.Errorf("config has no file path")}
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(cfg.path, data, 0o644)
}

// ChangeSetting updates one key from its string form and saves the file.
func (cfg *Config) ChangeSetting(key, value string) error {
	value = strings.TrimSpace(value)
	switch key {
	case "content_dir":
		cfg.ContentDir = value
	case "extension":
		cfg.Extension = value
	case "route_prefix":
		cfg.RoutePrefix = value
	case "link_map":
		cfg.LinkMap = value
	case "search.empty_query":
		cfg.Search.EmptyQuery = value
	case "log.level":
		cfg.Log.Level = value
	case "log.format":
		cfg.Log.Format = value
	case "ignored_folders":
		cfg.IgnoredFolders = splitList(value)
	case "summary_length", "concurrency", "search.snippet_window":
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return &ValidationError{Key: key, Err: fmt.Errorf("expected a positive number, got %q", value)}
		}
		switch key {
		case "summary_length":
			cfg.SummaryLength = n
		case "concurrency":
			cfg.Concurrency = n
		default:
			cfg.Search.SnippetWindow = n
		}
	default:
		return &ValidationError{Key: key, Err: fmt.Errorf("unknown setting (valid: %s)", strings.Join(Keys, ", "))}
	}

	cfg.ensureDefaults()
	return cfg.Save()
}

// Values returns every setting keyed by its dotted name.
func (cfg *Config) Values() map[string]any {
	return map[string]any{
		"content_dir":           cfg.ContentDir,
		"extension":             cfg.Extension,
		"summary_length":        cfg.SummaryLength,
		"route_prefix":          cfg.RoutePrefix,
		"link_map":              cfg.LinkMap,
		"concurrency":           cfg.Concurrency,
		"ignored_folders":       append([]string(nil), cfg.IgnoredFolders...),
		"search.empty_query":    cfg.Search.EmptyQuery,
		"search.snippet_window": cfg.Search.SnippetWindow,
		"log.level":             cfg.Log.Level,
		"log.format":            cfg.Log.Format,
	}
}

// Get returns the string form of one setting, as accepted by ChangeSetting.
func (cfg *Config) Get(key string) (string, bool) {
	value, ok := cfg.Values()[key]
	if !ok {
		return "", false
	}
	if list, isList := value.([]string); isList {
		return strings.Join(list, ","), true
	}
	return cast.ToString(value), true
}

// SortedKeys returns the keys of Values in sorted order.
func SortedKeys() []string {
	keys := append([]string(nil), Keys...)
	sort.Strings(keys)
	return keys
}

// Resolve layers flags and environment variables bound to v over the file
// values and returns the effective configuration. The receiver is left
// untouched so Save never persists overrides.
func (cfg *Config) Resolve(v *viper.Viper) (*Config, error) {
	for key, value := range cfg.Values() {
		v.SetDefault(key, value)
	}

	out := &Config{
		ContentDir:     v.GetString("content_dir"),
		Extension:      v.GetString("extension"),
		SummaryLength:  v.GetInt("summary_length"),
		RoutePrefix:    v.GetString("route_prefix"),
		LinkMap:        v.GetString("link_map"),
		Concurrency:    v.GetInt("concurrency"),
		IgnoredFolders: v.GetStringSlice("ignored_folders"),
		Search: SearchConfig{
			EmptyQuery:    v.GetString("search.empty_query"),
			SnippetWindow: v.GetInt("search.snippet_window"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		path: cfg.path,
	}
	out.ensureDefaults()
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

func splitList(value string) []string {
	out := []string{}
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
