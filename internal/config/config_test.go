package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 256, cfg.MaxDepth)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "text", cfg.Output)
	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, []string{".rbs"}, cfg.Extensions)
	assert.Nil(t, cfg.LogFile())
	assert.NoError(t, cfg.Validate())
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, ".rbsparse.toml", `
max_depth = 64
output = "json"
extensions = [".rbs", ".rbsi"]

[log]
verbosity = 2
file = "/tmp/rbsparse.log"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.MaxDepth)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, 2, cfg.Log.Verbosity)
	assert.Equal(t, []string{".rbs", ".rbsi"}, cfg.Extensions)
	require.NotNil(t, cfg.LogFile())
	assert.Equal(t, "/tmp/rbsparse.log", *cfg.LogFile())
	assert.Equal(t, path, cfg.FilePath())
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, ".rbsparse.yml", `
workers: 8
color: never
output: yaml
log:
  verbosity: 1
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "never", cfg.Color)
	assert.Equal(t, "yaml", cfg.Output)
	assert.Equal(t, 1, cfg.Log.Verbosity)
	assert.Equal(t, 256, cfg.MaxDepth)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")

	bad := writeConfig(t, dir, "bad.toml", "max_depth = [")
	_, err = Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse TOML config")

	badYAML := writeConfig(t, dir, "bad.yaml", "workers: [1")
	_, err = Load(badYAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		message string
	}{
		{"negative depth", func(c *Config) { c.MaxDepth = -1 }, "max_depth must be positive"},
		{"negative workers", func(c *Config) { c.Workers = -3 }, "workers must be positive"},
		{"unknown output", func(c *Config) { c.Output = "xml" }, "output must be one of"},
		{"unknown color", func(c *Config) { c.Color = "sometimes" }, "color must be one of"},
		{"negative verbosity", func(c *Config) { c.Log.Verbosity = -1 }, "log.verbosity"},
		{"extension without dot", func(c *Config) { c.Extensions = []string{"rbs"} }, "must start with a dot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestParseRejectsInvalidValues(t *testing.T) {
	_, err := Parse([]byte(`output = "html"`), FormatTOML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output must be one of")
}

func TestFindSearchesParents(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	want := writeConfig(t, root, ".rbsparse.yaml", "workers: 2\n")

	got, err := Find(nested)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	cfg, err := LoadDefault(nested)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers)
}

func TestFindPrefersTOML(t *testing.T) {
	dir := t.TempDir()
	want := writeConfig(t, dir, ".rbsparse.toml", "workers = 3\n")
	writeConfig(t, dir, ".rbsparse.yaml", "workers: 5\n")

	got, err := Find(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "toml", FormatTOML.String())
	assert.Equal(t, "yaml", FormatYAML.String())
	assert.Equal(t, FormatYAML, detectFormat("x/.rbsparse.YML"))
	assert.Equal(t, FormatTOML, detectFormat("x/config"))
}
