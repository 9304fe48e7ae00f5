package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/fbkclanna/asws/internal/testutil"
)

// setupWorkspace writes two sample projects into a temp dir and returns it.
func setupWorkspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	p := testutil.SimpleProject("Line")
	p.Description = "Packaging line"
	root := testutil.WriteProject(t, dir, p)
	testutil.WriteFile(t, filepath.Join(root, "Logical", "Include", "types.h"), "")
	testutil.WriteProject(t, filepath.Join(dir, "cells"), testutil.Project{
		Name:   "Cell",
		Active: "Sim",
		Configs: []testutil.Config{
			{Name: "Sim", Cpu: "PC", ModuleID: "PC_any"},
			{Name: "Hw", Cpu: "X20CP0484", ModuleID: "X20CP0484", IncludeDirs: []string{"Inc"}},
		},
	})
	return dir
}

// execute runs the CLI with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}
