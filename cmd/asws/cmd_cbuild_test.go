package main

import (
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fbkclanna/asws/internal/buildcfg"
)

func TestRunCBuild_json(t *testing.T) {
	dir := setupWorkspace(t)
	src := filepath.Join(dir, "Line", "Logical", "Main", "Cyclic.c")

	out, err := execute(t, "--root", dir, "cbuild", src, "--json")
	if err != nil {
		t.Fatalf("cbuild failed: %v", err)
	}
	var info buildcfg.Info
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("invalid JSON output: %v", err)
	}
	if info.Configuration != "Config1" || info.ModuleID != "X20CP1586" {
		t.Errorf("unexpected info: %+v", info)
	}
	want := []string{
		filepath.Join(dir, "Line", "Logical", "Include"),
		filepath.Join(dir, "Line", "Shared", "Include"),
	}
	if len(info.IncludeDirs) != len(want) {
		t.Fatalf("IncludeDirs = %v", info.IncludeDirs)
	}
	for i, w := range want {
		if info.IncludeDirs[i].String() != w {
			t.Errorf("IncludeDirs[%d] = %q, want %q", i, info.IncludeDirs[i], w)
		}
	}
}

func TestRunCBuild_table(t *testing.T) {
	dir := setupWorkspace(t)

	out, err := execute(t, "--root", dir, "cbuild", filepath.Join(dir, "cells", "Cell", "Physical", "Hw"))
	if err != nil {
		t.Fatalf("cbuild failed: %v", err)
	}
	for _, s := range []string{"X20CP0484", "SG4 Arm", "6.3.0", filepath.Join(dir, "cells", "Cell", "Inc")} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
}

func TestRunCBuild_outsideProjects(t *testing.T) {
	dir := setupWorkspace(t)
	if _, err := execute(t, "--root", dir, "cbuild", t.TempDir()); err == nil {
		t.Fatal("expected error for a path outside every project")
	}
}

func TestRunCBuild_requiresPath(t *testing.T) {
	if _, err := execute(t, "cbuild"); err == nil {
		t.Fatal("expected error without path argument")
	}
}
