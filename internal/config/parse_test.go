package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParse_yaml(t *testing.T) {
	data := []byte(`
version: 1
roots: [projects, /abs/other]
exclude: ["**/Temp/**"]
jobs: 8
log:
  level: debug
watch:
  debounce: 2s
`)
	cfg, err := Parse(data, FormatYAML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Roots) != 2 || cfg.Roots[0] != "projects" {
		t.Errorf("roots = %v", cfg.Roots)
	}
	if cfg.Jobs != 8 {
		t.Errorf("jobs = %d, want 8", cfg.Jobs)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want debug", cfg.Log.Level)
	}
	if cfg.Log.Format != "console" {
		t.Errorf("log.format = %q, want default console", cfg.Log.Format)
	}
	if cfg.Watch.Interval() != 2*time.Second {
		t.Errorf("watch interval = %v, want 2s", cfg.Watch.Interval())
	}
	if cfg.Serve.Addr != Default().Serve.Addr {
		t.Errorf("serve.addr = %q, want default", cfg.Serve.Addr)
	}
}

func TestParse_toml(t *testing.T) {
	data := []byte(`
version = 1
roots = ["a", "b"]
jobs = 2

[log]
format = "json"

[serve]
addr = ":9000"
`)
	cfg, err := Parse(data, FormatTOML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Roots) != 2 || cfg.Jobs != 2 {
		t.Errorf("roots = %v, jobs = %d", cfg.Roots, cfg.Jobs)
	}
	if cfg.Log.Format != "json" || cfg.Log.Level != "info" {
		t.Errorf("log = %+v", cfg.Log)
	}
	if cfg.Serve.Addr != ":9000" {
		t.Errorf("serve.addr = %q", cfg.Serve.Addr)
	}
}

func TestParse_invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"bad version", "version: 2"},
		{"empty roots", "roots: []"},
		{"blank root", `roots: [" "]`},
		{"bad exclude", `exclude: ["[a"]`},
		{"zero jobs", "jobs: 0"},
		{"bad level", "log: {level: trace}"},
		{"bad format", "log: {format: xml}"},
		{"bad debounce", "watch: {debounce: soon}"},
		{"negative debounce", "watch: {debounce: -1s}"},
		{"empty addr", `serve: {addr: ""}`},
		{"bad yaml", ":::invalid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.data), FormatYAML); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	if _, err := Parse([]byte("jobs = ["), FormatTOML); err == nil {
		t.Error("expected error for invalid TOML")
	}
	if _, err := Parse(nil, Format("ini")); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestParse_empty(t *testing.T) {
	cfg, err := Parse(nil, FormatYAML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Jobs != Default().Jobs {
		t.Errorf("jobs = %d, want default", cfg.Jobs)
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]Format{
		"asws.yaml": FormatYAML,
		"asws.yml":  FormatYAML,
		"asws.toml": FormatTOML,
		"ASWS.TOML": FormatTOML,
		"asws":      FormatYAML,
	}
	for path, want := range tests {
		if got := FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestLoad_relativeRoots(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(dir, "elsewhere")
	path := filepath.Join(dir, "asws.yaml")
	data := "roots: [projects, " + abs + "]\n"
	if err := os.WriteFile(path, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Roots[0] != filepath.Join(dir, "projects") {
		t.Errorf("roots[0] = %q", cfg.Roots[0])
	}
	if cfg.Roots[1] != abs {
		t.Errorf("roots[1] = %q", cfg.Roots[1])
	}

	locs, err := cfg.RootLocations()
	if err != nil {
		t.Fatal(err)
	}
	if locs[0].String() != filepath.Join(dir, "projects") {
		t.Errorf("RootLocations()[0] = %q", locs[0])
	}
}

func TestLoad_missingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
