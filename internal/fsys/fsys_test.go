package fsys

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/fbkclanna/asws/internal/location"
)

func TestOS_ReadText(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "Cpu.pkg")
	if err := os.WriteFile(p, []byte("<Cpu/>"), 0644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}

	src := NewOS()
	data, err := src.ReadText(context.Background(), location.New(p))
	if err != nil {
		t.Fatalf("ReadText() error: %v", err)
	}
	if string(data) != "<Cpu/>" {
		t.Errorf("content = %q", data)
	}

	_, err = src.ReadText(context.Background(), location.New(filepath.Join(dir, "missing.pkg")))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestOS_FindFiles(t *testing.T) {
	dir := t.TempDir()
	for _, rel := range []string{
		"Physical/B/Config.pkg",
		"Physical/A/Config.pkg",
		"Physical/A/X20CP1586/Cpu.pkg",
		"Physical/Physical.pkg",
	} {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, nil, 0644); err != nil { //nolint:gosec // test file
			t.Fatal(err)
		}
	}

	base := location.New(filepath.Join(dir, "Physical"))
	got, err := NewOS().FindFiles(context.Background(), base, "*/Config.pkg")
	if err != nil {
		t.Fatalf("FindFiles() error: %v", err)
	}
	want := []string{
		filepath.Join(base.String(), "A", "Config.pkg"),
		filepath.Join(base.String(), "B", "Config.pkg"),
	}
	if diff := cmp.Diff(want, paths(got)); diff != "" {
		t.Errorf("FindFiles() mismatch (-want +got):\n%s", diff)
	}
}

func TestOS_canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewOS().ReadText(ctx, location.New("/nowhere")); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	m.Add("/ws/a/A.apj", "a")
	m.Add("/ws/b/nested/B.apj", "b")
	m.Add("/ws/b/readme.txt", "x")
	m.Deny("/ws/b/nested/B.apj")

	got, err := m.FindFiles(context.Background(), location.New("/ws"), "**/*.apj")
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"/ws/a/A.apj", "/ws/b/nested/B.apj"}, paths(got)); diff != "" {
		t.Errorf("FindFiles() mismatch (-want +got):\n%s", diff)
	}

	data, err := m.ReadText(context.Background(), location.New("/ws/a/A.apj"))
	if err != nil || string(data) != "a" {
		t.Errorf("ReadText() = %q, %v", data, err)
	}
	if _, err := m.ReadText(context.Background(), location.New("/ws/b/nested/B.apj")); !errors.Is(err, ErrAccessDenied) {
		t.Errorf("expected ErrAccessDenied, got %v", err)
	}
	m.Remove("/ws/a/A.apj")
	if _, err := m.ReadText(context.Background(), location.New("/ws/a/A.apj")); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if m.Reads() != 3 {
		t.Errorf("Reads() = %d, want 3", m.Reads())
	}
}

func paths(locs []location.Location) []string {
	out := make([]string, len(locs))
	for i, l := range locs {
		out[i] = l.String()
	}
	return out
}
