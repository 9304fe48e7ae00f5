package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/fbkclanna/asws/internal/location"
)

// Format is a configuration file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatForPath picks the format from the file extension. Unknown
// extensions are read as YAML.
func FormatForPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load reads and validates a configuration file. Relative roots are resolved
// against the directory of the file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(data, FormatForPath(path))
	if err != nil {
		return nil, err
	}
	base := filepath.Dir(path)
	for i, r := range cfg.Roots {
		if !filepath.IsAbs(r) {
			cfg.Roots[i] = filepath.Join(base, r)
		}
	}
	return cfg, nil
}

// Parse parses and validates configuration content. Fields missing from data
// keep their Default values.
func Parse(data []byte, format Format) (*Config, error) {
	cfg := Default()
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config TOML: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("config: unknown format %q", format)
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func Validate(cfg *Config) error { return validate(cfg) }

func validate(cfg *Config) error {
	if cfg.Version != 1 {
		return fmt.Errorf("unsupported config version: %d (expected 1)", cfg.Version)
	}
	if len(cfg.Roots) == 0 {
		return fmt.Errorf("config: at least one root is required")
	}
	for i, r := range cfg.Roots {
		if strings.TrimSpace(r) == "" {
			return fmt.Errorf("config: roots[%d] is empty", i)
		}
	}
	for i, p := range cfg.Exclude {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("config: exclude[%d]: invalid pattern %q", i, p)
		}
	}
	if cfg.Jobs < 1 {
		return fmt.Errorf("config: jobs must be >= 1 (got %d)", cfg.Jobs)
	}
	switch cfg.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q (must be debug, info, warn, or error)", cfg.Log.Level)
	}
	switch cfg.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("config: unknown log format %q (must be console or json)", cfg.Log.Format)
	}
	d, err := time.ParseDuration(cfg.Watch.Debounce)
	if err != nil {
		return fmt.Errorf("config: watch.debounce: %w", err)
	}
	if d < 0 {
		return fmt.Errorf("config: watch.debounce must not be negative: %s", cfg.Watch.Debounce)
	}
	if cfg.Serve.Addr == "" {
		return fmt.Errorf("config: serve.addr is required")
	}
	return nil
}

// RootLocations returns the roots as absolute locations.
func (c *Config) RootLocations() ([]location.Location, error) {
	out := make([]location.Location, 0, len(c.Roots))
	for _, r := range c.Roots {
		l, err := location.Abs(r)
		if err != nil {
			return nil, fmt.Errorf("resolving root %s: %w", r, err)
		}
		out = append(out, l)
	}
	return out, nil
}
