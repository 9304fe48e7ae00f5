package fsys

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"testing/fstest"

	"github.com/fbkclanna/asws/internal/location"
)

// Memory is an in-memory Source. Paths are absolute slash paths.
type Memory struct {
	mu     sync.RWMutex
	files  fstest.MapFS
	denied map[string]bool
	reads  int
}

// NewMemory returns an empty in-memory Source.
func NewMemory() *Memory {
	return &Memory{files: fstest.MapFS{}, denied: map[string]bool{}}
}

// Add stores content at path, replacing any previous file.
func (m *Memory) Add(path, content string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[key(location.New(path))] = &fstest.MapFile{Data: []byte(content), Mode: 0o644}
}

// Remove deletes the file at path.
func (m *Memory) Remove(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, key(location.New(path)))
}

// Deny makes reads of path fail with ErrAccessDenied.
func (m *Memory) Deny(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.denied[key(location.New(path))] = true
}

// Reads returns the number of ReadText calls served.
func (m *Memory) Reads() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.reads
}

// ReadText returns the content stored at loc.
func (m *Memory) ReadText(ctx context.Context, loc location.Location) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reads++
	k := key(loc)
	if m.denied[k] {
		return nil, classify(loc, fs.ErrPermission)
	}
	f, ok := m.files[k]
	if !ok {
		return nil, classify(loc, fs.ErrNotExist)
	}
	return append([]byte(nil), f.Data...), nil
}

// FindFiles globs pattern below base.
func (m *Memory) FindFiles(ctx context.Context, base location.Location, pattern string) ([]location.Location, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var sub fs.FS = m.files
	if k := key(base); k != "" {
		var err error
		if sub, err = fs.Sub(m.files, k); err != nil {
			return nil, err
		}
	}
	return glob(sub, base, pattern)
}

func key(loc location.Location) string {
	return strings.TrimPrefix(filepath.ToSlash(loc.String()), "/")
}
