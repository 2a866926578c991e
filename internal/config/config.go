package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is the on-disk encoding of a configuration file.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FileNames are the configuration file names looked up by Find, in order.
var FileNames = []string{".rbsparse.toml", ".rbsparse.yaml", ".rbsparse.yml"}

const (
	DefaultMaxDepth = 256
	DefaultWorkers  = 4
)

var (
	validOutputs = []string{"text", "json", "yaml"}
	validColors  = []string{"auto", "always", "never"}
)

// Config holds the tool configuration.
type Config struct {
	MaxDepth   int       `toml:"max_depth" yaml:"max_depth"`
	Output     string    `toml:"output" yaml:"output"`
	Color      string    `toml:"color" yaml:"color"`
	Workers    int       `toml:"workers" yaml:"workers"`
	Log        LogConfig `toml:"log" yaml:"log"`
	Extensions []string  `toml:"extensions" yaml:"extensions"`

	path string
}

// LogConfig holds logging settings passed to commonlog.Configure.
type LogConfig struct {
	Verbosity int    `toml:"verbosity" yaml:"verbosity"`
	File      string `toml:"file" yaml:"file"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a configuration file, choosing the decoder by extension.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg, err := Parse(content, detectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.path = path
	return cfg, nil
}

// Parse decodes configuration content in the given format, applies
// defaults and validates the result.
func Parse(content []byte, format Format) (*Config, error) {
	var cfg Config
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(content, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		if _, err := toml.Decode(string(content), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse TOML config: %w", err)
		}
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Find looks for a configuration file in dir and then in each of its
// parents. It returns an empty path when none exists.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		for _, name := range FileNames {
			candidate := filepath.Join(dir, name)
			if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LoadDefault finds the nearest configuration file from dir and loads it,
// falling back to Default when there is none.
func LoadDefault(dir string) (*Config, error) {
	path, err := Find(dir)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks every field against its allowed range.
func (c *Config) Validate() error {
	if c.MaxDepth <= 0 {
		return fmt.Errorf("max_depth must be positive, got %d", c.MaxDepth)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if !slices.Contains(validOutputs, c.Output) {
		return fmt.Errorf("output must be one of %s, got %q", strings.Join(validOutputs, ", "), c.Output)
	}
	if !slices.Contains(validColors, c.Color) {
		return fmt.Errorf("color must be one of %s, got %q", strings.Join(validColors, ", "), c.Color)
	}
	if c.Log.Verbosity < 0 {
		return fmt.Errorf("log.verbosity must not be negative, got %d", c.Log.Verbosity)
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extension %q must start with a dot", ext)
		}
	}
	return nil
}

// FilePath returns the file the configuration was loaded from, if any.
func (c *Config) FilePath() string {
	return c.path
}

// LogFile returns the log file path for commonlog.Configure, or nil for stderr.
func (c *Config) LogFile() *string {
	if c.Log.File == "" {
		return nil
	}
	path := os.ExpandEnv(c.Log.File)
	return &path
}

func (c *Config) applyDefaults() {
	if c.MaxDepth == 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	if c.Workers == 0 {
		c.Workers = DefaultWorkers
	}
	if c.Output == "" {
		c.Output = "text"
	}
	if c.Color == "" {
		c.Color = "auto"
	}
	if len(c.Extensions) == 0 {
		c.Extensions = []string{".rbs"}
	}
}

func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}
