package vrml

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

const defaultMaxCascade = 100000

// Options configures a Scene. The zero value is usable; zero fields take
// their defaults.
type Options struct {
	// Debug enables tree-depth and child-count warnings and per-step timing
	// logs.
	Debug bool `yaml:"debug" toml:"debug"`
	// LogLevel is one of debug, info, warn, error. Only used by NewLogger.
	LogLevel string `yaml:"log_level" toml:"log_level"`
	// MaxCascade caps the number of routed deliveries per drain. Events
	// beyond it are dropped and logged. Zero means the default; negative
	// means unlimited.
	MaxCascade int `yaml:"max_cascade" toml:"max_cascade"`
	// NoDefaultBindables disables binding the first initialized bindable
	// node of each kind.
	NoDefaultBindables bool `yaml:"no_default_bindables" toml:"no_default_bindables"`
}

func (o Options) maxCascade() int {
	if o.MaxCascade == 0 {
		return defaultMaxCascade
	}
	return o.MaxCascade
}

// Level returns the slog level named by LogLevel (info when unset or
// unrecognised).
func (o Options) Level() slog.Level {
	switch strings.ToLower(o.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// NewLogger returns a text logger on stderr at the configured level.
func (o Options) NewLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: o.Level()}))
}

// LoadOptions reads options from a YAML (.yaml, .yml) or TOML (.toml) file.
func LoadOptions(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("load options: %w", err)
	}
	return ParseOptions(data, strings.TrimPrefix(filepath.Ext(path), "."))
}

// ParseOptions decodes options in the given format ("yaml", "yml" or
// "toml").
func ParseOptions(data []byte, format string) (Options, error) {
	var o Options
	switch strings.ToLower(format) {
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &o); err != nil {
			return Options{}, fmt.Errorf("parse options: %w", err)
		}
	case "toml":
		if err := toml.Unmarshal(data, &o); err != nil {
			return Options{}, fmt.Errorf("parse options: %w", err)
		}
	default:
		return Options{}, fmt.Errorf("parse options: unsupported format %q", format)
	}
	return o, nil
}

// Option configures a Scene at construction.
type Option func(*Scene)

// WithLogger sets the scene's logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Scene) { s.log = l }
}

// WithMetrics attaches prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *Scene) { s.metrics = m }
}

// WithOptions applies file-level options.
func WithOptions(o Options) Option {
	return func(s *Scene) { s.opts = o }
}

// WithEventSink forwards every routed event to sink.
func WithEventSink(sink EventSink) Option {
	return func(s *Scene) { s.sink = sink }
}
