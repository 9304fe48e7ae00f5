package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunScan(t *testing.T) {
	dir := setupWorkspace(t)

	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs([]string{"--root", dir, "--log-level", "error", "scan"})
	if err := root.Execute(); err != nil {
		t.Fatalf("scan failed: %v", err)
	}

	if !strings.Contains(out.String(), "Scan complete: 2 projects") {
		t.Errorf("unexpected output: %s", out.String())
	}
	progress := errOut.String()
	if !strings.Contains(progress, "Scanning "+dir+"\n") {
		t.Errorf("missing root line: %s", progress)
	}
	if !strings.Contains(progress, "[1/2]") || !strings.Contains(progress, "[2/2]") {
		t.Errorf("missing progress lines: %s", progress)
	}
}

func TestRunDoctor(t *testing.T) {
	dir := setupWorkspace(t)

	out, err := execute(t, "--root", dir, "doctor")
	if err != nil {
		t.Fatalf("doctor failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "All checks passed.") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "Warning: include directory") {
		t.Errorf("expected missing include directory warning:\n%s", out)
	}
}

func TestRunDoctor_failures(t *testing.T) {
	dir := setupWorkspace(t)
	broken := filepath.Join(dir, "Broken", "Broken.apj")
	if err := os.MkdirAll(filepath.Dir(broken), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(broken, []byte("<Project>"), 0600); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "--root", dir, "--root", filepath.Join(dir, "missing"), "doctor")
	if err == nil {
		t.Fatal("expected doctor to fail")
	}
	for _, s := range []string{"NOT FOUND", "1 project files could not be loaded", "Some checks failed."} {
		if !strings.Contains(out, s) {
			t.Errorf("output missing %q:\n%s", s, out)
		}
	}
}
