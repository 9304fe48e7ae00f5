// Package config loads the asws tool configuration from YAML or TOML.
package config

import "time"

// Config is the asws.yaml (or asws.toml) tool configuration.
type Config struct {
	Version int      `yaml:"version" toml:"version"`
	Roots   []string `yaml:"roots,omitempty" toml:"roots,omitempty"`
	Exclude []string `yaml:"exclude,omitempty" toml:"exclude,omitempty"`
	Jobs    int      `yaml:"jobs,omitempty" toml:"jobs,omitempty"`
	Log     Log      `yaml:"log,omitempty" toml:"log,omitempty"`
	Watch   Watch    `yaml:"watch,omitempty" toml:"watch,omitempty"`
	Serve   Serve    `yaml:"serve,omitempty" toml:"serve,omitempty"`
}

// Log configures the logger.
type Log struct {
	Level  string `yaml:"level,omitempty" toml:"level,omitempty"`
	Format string `yaml:"format,omitempty" toml:"format,omitempty"`
}

// Watch configures the watch command.
type Watch struct {
	Debounce string `yaml:"debounce,omitempty" toml:"debounce,omitempty"`
}

// Interval returns the debounce duration. Validated configs never fail here.
func (w Watch) Interval() time.Duration {
	d, _ := time.ParseDuration(w.Debounce)
	return d
}

// Serve configures the HTTP server.
type Serve struct {
	Addr string `yaml:"addr,omitempty" toml:"addr,omitempty"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Version: 1,
		Roots:   []string{"."},
		Jobs:    4,
		Log:     Log{Level: "info", Format: "console"},
		Watch:   Watch{Debounce: "500ms"},
		Serve:   Serve{Addr: "127.0.0.1:8750"},
	}
}
