package fsys

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/fbkclanna/asws/internal/location"
)

var (
	// ErrNotFound is returned when a file does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAccessDenied is returned when a file cannot be read due to permissions.
	ErrAccessDenied = errors.New("access denied")
)

// Source reads files and finds files by glob pattern. Patterns use
// doublestar syntax ("*/Config.pkg", "**/*.apj") relative to the base.
type Source interface {
	ReadText(ctx context.Context, loc location.Location) ([]byte, error)
	FindFiles(ctx context.Context, base location.Location, pattern string) ([]location.Location, error)
}

// OS reads from the local file system.
type OS struct{}

// NewOS returns a Source backed by the local file system.
func NewOS() *OS { return &OS{} }

// ReadText reads the whole file at loc.
func (*OS) ReadText(ctx context.Context, loc location.Location) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(loc.String())
	if err != nil {
		return nil, classify(loc, err)
	}
	return data, nil
}

// FindFiles returns the files below base matching pattern, sorted.
func (*OS) FindFiles(ctx context.Context, base location.Location, pattern string) ([]location.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return glob(os.DirFS(base.String()), base, pattern)
}

func glob(fsys fs.FS, base location.Location, pattern string) ([]location.Location, error) {
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("globbing %q in %s: %w", pattern, base, err)
	}
	sort.Strings(matches)
	out := make([]location.Location, 0, len(matches))
	for _, m := range matches {
		out = append(out, base.Join(filepath.FromSlash(m)))
	}
	return out, nil
}

func classify(loc location.Location, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("reading %s: %w: %w", loc, ErrNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("reading %s: %w: %w", loc, ErrAccessDenied, err)
	default:
		return fmt.Errorf("reading %s: %w", loc, err)
	}
}
