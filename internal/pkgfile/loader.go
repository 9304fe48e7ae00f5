package pkgfile

import (
	"context"

	"go.uber.org/zap"

	"github.com/fbkclanna/asws/internal/fsys"
	"github.com/fbkclanna/asws/internal/location"
)

// Loader reads package files from a Source. Its methods never fail: a file
// that cannot be read or parsed is logged once at error level and nil is
// returned, so one broken file only drops the project part that owns it.
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

// Load reads path with the given role and returns nil on failure.
func (l *Loader) Load(ctx context.Context, role Role, path location.Location) File {
	data, ok := l.read(ctx, role, path)
	if !ok {
		return nil
	}
	f, err := Parse(path, data, role)
	if err != nil {
		l.fail(role, path, err)
		return nil
	}
	return f
}

// Package reads a generic package file.
func (l *Loader) Package(ctx context.Context, path location.Location) *Package {
	return l.pkg(ctx, RolePackage, path)
}

// Physical reads a Physical.pkg.
func (l *Loader) Physical(ctx context.Context, path location.Location) *Package {
	return l.pkg(ctx, RolePhysical, path)
}

// Config reads a Config.pkg.
func (l *Loader) Config(ctx context.Context, path location.Location) *ConfigPackage {
	data, ok := l.read(ctx, RoleConfiguration, path)
	if !ok {
		return nil
	}
	c, err := ParseConfigPackage(path, data)
	if err != nil {
		l.fail(RoleConfiguration, path, err)
		return nil
	}
	return c
}

// Cpu reads a Cpu.pkg.
func (l *Loader) Cpu(ctx context.Context, path location.Location) *CpuPackage {
	data, ok := l.read(ctx, RoleCpu, path)
	if !ok {
		return nil
	}
	c, err := ParseCpuPackage(path, data)
	if err != nil {
		l.fail(RoleCpu, path, err)
		return nil
	}
	return c
}

func (l *Loader) pkg(ctx context.Context, role Role, path location.Location) *Package {
	data, ok := l.read(ctx, role, path)
	if !ok {
		return nil
	}
	p, err := ParsePackage(path, data, role)
	if err != nil {
		l.fail(role, path, err)
		return nil
	}
	return p
}

func (l *Loader) read(ctx context.Context, role Role, path location.Location) ([]byte, bool) {
	data, err := l.src.ReadText(ctx, path)
	if err != nil {
		l.fail(role, path, err)
		return nil, false
	}
	return data, true
}

func (l *Loader) fail(role Role, path location.Location, err error) {
	l.log.Error("failed to load package file",
		zap.Stringer("path", path),
		zap.Stringer("role", role),
		zap.Error(err),
	)
}
