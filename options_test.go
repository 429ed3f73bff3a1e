package vrml

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOptionsYAML(t *testing.T) {
	o, err := ParseOptions([]byte("debug: true\nlog_level: warn\nmax_cascade: 50\nno_default_bindables: true\n"), "yaml")
	require.NoError(t, err)
	assert.Equal(t, Options{Debug: true, LogLevel: "warn", MaxCascade: 50, NoDefaultBindables: true}, o)
	assert.Equal(t, slog.LevelWarn, o.Level())
	assert.Equal(t, 50, o.maxCascade())
}

func TestParseOptionsTOML(t *testing.T) {
	o, err := ParseOptions([]byte("log_level = \"debug\"\nmax_cascade = -1\n"), "TOML")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, o.Level())
	assert.Equal(t, -1, o.maxCascade())
	assert.False(t, o.Debug)
}

func TestParseOptionsErrors(t *testing.T) {
	_, err := ParseOptions([]byte("{}"), "json")
	assert.ErrorContains(t, err, "unsupported format")

	_, err = ParseOptions([]byte("debug: [1, 2"), "yml")
	assert.Error(t, err)

	_, err = ParseOptions([]byte("debug = = true"), "toml")
	assert.Error(t, err)
}

func TestLoadOptions(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scene.toml")
	require.NoError(t, os.WriteFile(path, []byte("debug = true\n"), 0o644))

	o, err := LoadOptions(path)
	require.NoError(t, err)
	assert.True(t, o.Debug)

	_, err = LoadOptions(filepath.Join(dir, "missing.yaml"))
	assert.ErrorContains(t, err, "load options")
}

func TestOptionsDefaults(t *testing.T) {
	var o Options
	assert.Equal(t, defaultMaxCascade, o.maxCascade())
	assert.Equal(t, slog.LevelInfo, o.Level())
	assert.Equal(t, slog.LevelError, Options{LogLevel: "ERROR"}.Level())
	assert.Equal(t, slog.LevelInfo, Options{LogLevel: "chatty"}.Level())
	assert.NotNil(t, o.NewLogger())
}
