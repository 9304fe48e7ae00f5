package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/fbkclanna/asws/internal/workspace"
)

func TestRunProjects_table(t *testing.T) {
	dir := setupWorkspace(t)

	out, err := execute(t, "--root", dir, "projects")
	if err != nil {
		t.Fatalf("projects failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "PROJECT") {
		t.Errorf("header missing PROJECT: %q", lines[0])
	}
	if !strings.Contains(out, "Line") || !strings.Contains(out, "Sim,Hw") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestRunProjects_json(t *testing.T) {
	dir := setupWorkspace(t)

	out, err := execute(t, "--root", dir, "projects", "--json")
	if err != nil {
		t.Fatalf("projects --json failed: %v", err)
	}
	var projects []workspace.Project
	if err := json.Unmarshal([]byte(out), &projects); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("expected 2 projects, got %d", len(projects))
	}
	var line *workspace.Project
	for i := range projects {
		if projects[i].Name == "Line" {
			line = &projects[i]
		}
	}
	if line == nil {
		t.Fatal("project Line missing")
	}
	if line.Description != "Packaging line" {
		t.Errorf("Description = %q", line.Description)
	}
	if got := line.Paths.ProjectRoot.String(); got != filepath.Join(dir, "Line") {
		t.Errorf("ProjectRoot = %q", got)
	}
}

func TestRunProjects_yaml(t *testing.T) {
	dir := setupWorkspace(t)

	out, err := execute(t, "--root", dir, "projects", "--yaml")
	if err != nil {
		t.Fatalf("projects --yaml failed: %v", err)
	}
	var projects []map[string]any
	if err := yaml.Unmarshal([]byte(out), &projects); err != nil {
		t.Fatalf("invalid YAML output: %v", err)
	}
	if len(projects) != 2 {
		t.Errorf("expected 2 projects, got %d", len(projects))
	}
}

func TestRunProjects_exclusiveFormats(t *testing.T) {
	dir := setupWorkspace(t)
	if _, err := execute(t, "--root", dir, "projects", "--json", "--yaml"); err == nil {
		t.Fatal("expected error for --json with --yaml")
	}
}

func TestRunProjects_configFile(t *testing.T) {
	dir := setupWorkspace(t)
	cfgPath := filepath.Join(dir, "asws.toml")
	data := "version = 1\nroots = [\".\"]\nexclude = [\"cells/**\"]\n"
	if err := os.WriteFile(cfgPath, []byte(data), 0600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--config", cfgPath, "projects", "--json")
	if err != nil {
		t.Fatalf("projects failed: %v", err)
	}
	var projects []workspace.Project
	if err := json.Unmarshal([]byte(out), &projects); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if len(projects) != 1 || projects[0].Name != "Line" {
		t.Errorf("expected only Line, got %+v", projects)
	}
}

func TestRunProjects_invalidFlags(t *testing.T) {
	dir := setupWorkspace(t)
	if _, err := execute(t, "--root", dir, "--jobs", "0", "projects"); err == nil {
		t.Error("expected error for --jobs 0")
	}
	if _, err := execute(t, "--root", dir, "--log-level", "loud", "projects"); err == nil {
		t.Error("expected error for unknown log level")
	}
	if _, err := execute(t, "--config", filepath.Join(dir, "missing.yaml"), "projects"); err == nil {
		t.Error("expected error for missing config file")
	}
}
