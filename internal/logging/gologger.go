package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	glog "github.com/goliatone/go-logger/glog"
)

// Config captures the options exposed by the go-logger provider.
type Config struct {
	Level  string
	Format string
	// Output receives every log line. Defaults to os.Stderr so command output
	// on stdout stays machine readable.
	Output io.Writer
}

// Provider hands out named child loggers. Records use go-logger's key layout
// (ts, lower-case level, logger) and its colour console handler for the
// pretty format.
type Provider struct {
	root *slog.Logger
}

// NewProvider constructs a go-logger styled provider writing to cfg.Output.
func NewProvider(cfg Config) (*Provider, error) {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:       levelOf(cfg.Level),
		ReplaceAttr: replaceAttr,
	}

	var handler slog.Handler
	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "console":
		handler = slog.NewTextHandler(out, opts)
	case "json":
		handler = slog.NewJSONHandler(out, opts)
	case "pretty":
		handler = glog.NewColorConsoleHandler(out, opts)
	default:
		return nil, fmt.Errorf("logging: unsupported format %q", cfg.Format)
	}

	return &Provider{root: slog.New(handler)}, nil
}

// GetLogger returns a child logger for the named module.
func (p *Provider) GetLogger(name string) Logger {
	if p == nil || p.root == nil {
		return NoOp()
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return &adapter{inner: p.root}
	}
	return &adapter{inner: p.root.With("logger", name)}
}

type adapter struct {
	inner *slog.Logger
}

func (l *adapter) Debug(msg string, args ...any) { l.inner.Debug(msg, args...) }
func (l *adapter) Info(msg string, args ...any)  { l.inner.Info(msg, args...) }
func (l *adapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, args...) }
func (l *adapter) Error(msg string, args ...any) { l.inner.Error(msg, args...) }

func replaceAttr(_ []string, a slog.Attr) slog.Attr {
	switch a.Key {
	case slog.TimeKey:
		a.Key = "ts"
	case slog.LevelKey:
		level, ok := a.Value.Any().(slog.Level)
		if !ok {
			return a
		}
		label, exists := glog.CustomLevels[level]
		if !exists {
			label = level.String()
		}
		a.Value = slog.StringValue(strings.ToLower(label))
	}
	return a
}

// ValidFormat reports whether format is accepted by NewProvider.
func ValidFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "console", "json", "pretty":
		return true
	}
	return false
}

// ValidLevel reports whether level is accepted by NewProvider.
func ValidLevel(level string) bool {
	return strings.TrimSpace(level) == "" || normalizeLevel(level) != ""
}

func levelOf(level string) slog.Level {
	switch normalizeLevel(level) {
	case glog.Trace:
		return glog.LevelTrace
	case glog.Debug:
		return slog.LevelDebug
	case glog.Warn:
		return slog.LevelWarn
	case glog.Error:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func normalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "":
		return ""
	case "trace":
		return glog.Trace
	case "debug":
		return glog.Debug
	case "info":
		return glog.Info
	case "warn", "warning":
		return glog.Warn
	case "error":
		return glog.Error
	default:
		return ""
	}
}
