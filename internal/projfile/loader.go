package projfile

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fbkclanna/asws/internal/fsys"
	"github.com/fbkclanna/asws/internal/location"
)

// Loader reads project files and never fails: errors are logged and nil
// is returned.
type Loader struct {
	src fsys.Source
	log *zap.Logger
}

// NewLoader returns a Loader. A nil logger discards output.
func NewLoader(src fsys.Source, log *zap.Logger) *Loader {
	if log == nil {
		log = zap.NewNop()
	}
	return &Loader{src: src, log: log}
}

// Project reads a project descriptor.
func (l *Loader) Project(ctx context.Context, path location.Location) *File {
	data, err := l.src.ReadText(ctx, path)
	if err == nil {
		var f *File
		if f, err = Parse(path, data); err == nil {
			return f
		}
	}
	l.log.Error("failed to load project file", zap.Stringer("path", path), zap.Error(err))
	return nil
}

// Settings reads a user settings file. A missing file is common for
// projects that were never opened and is logged at debug level only.
func (l *Loader) Settings(ctx context.Context, path location.Location) *Settings {
	data, err := l.src.ReadText(ctx, path)
	if err == nil {
		var s *Settings
		if s, err = ParseSettings(path, data); err == nil {
			return s
		}
	}
	if errors.Is(err, fsys.ErrNotFound) {
		l.log.Debug("no user settings file", zap.Stringer("path", path))
		return nil
	}
	l.log.Error("failed to load settings file", zap.Stringer("path", path), zap.Error(err))
	return nil
}
