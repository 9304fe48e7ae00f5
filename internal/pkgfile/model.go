package pkgfile

import (
	"errors"

	"github.com/fbkclanna/asws/internal/asxml"
	"github.com/fbkclanna/asws/internal/location"
)

// Object types with a directory convention of their own.
const (
	TypeCpu           = "Cpu"
	TypeConfiguration = "Configuration"
)

// ErrNotInitialized is the panic value when role data is read from a value
// that was not built by this package.
var ErrNotInitialized = errors.New("pkgfile: use of not initialized package file")

// Object is one child entry declared in a package file.
type Object struct {
	Type        string `json:"type" yaml:"type"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// ResolveLocation returns the directory or file the object refers to.
// pkgDir is the directory of the package file that declares the object.
func (o Object) ResolveLocation(projectRoot, pkgDir location.Location) location.Location {
	switch o.Type {
	case TypeConfiguration:
		return projectRoot.Join("Physical", o.Name)
	default:
		// Cpu objects are declared in Config.pkg and live next to it in the
		// configuration directory, the same as programs and packages.
		return pkgDir.Join(o.Name)
	}
}

// File is implemented by every package file role.
type File interface {
	FilePath() location.Location
	RootType() string
	Objects() []Object
	Role() Role
	Header() asxml.Header
}

// Package is a generic package file, also used for Physical.pkg.
type Package struct {
	path     location.Location
	role     Role
	rootType string
	header   asxml.Header
	objects  []Object
}

// FilePath returns the location of the package file.
func (p *Package) FilePath() location.Location { return p.path }

// Dir returns the directory containing the package file.
func (p *Package) Dir() location.Location { return p.path.Parent() }

// RootType returns the name of the root element.
func (p *Package) RootType() string { return p.rootType }

// Role returns the role the file was parsed as.
func (p *Package) Role() Role { return p.role }

// Header returns the Automation Studio version header.
func (p *Package) Header() asxml.Header { return p.header }

// Objects returns a copy of the declared child objects in declaration order.
func (p *Package) Objects() []Object {
	return append([]Object(nil), p.objects...)
}

// ObjectsOfType returns the declared objects with the given type.
func (p *Package) ObjectsOfType(typ string) []Object {
	var out []Object
	for _, o := range p.objects {
		if o.Type == typ {
			out = append(out, o)
		}
	}
	return out
}

// ResolveObjects returns the location of every child object.
func (p *Package) ResolveObjects(projectRoot location.Location) []location.Location {
	out := make([]location.Location, len(p.objects))
	for i, o := range p.objects {
		out[i] = o.ResolveLocation(projectRoot, p.Dir())
	}
	return out
}

// ConfigPackage is the Config.pkg of a configuration. It declares exactly
// one Cpu object.
type ConfigPackage struct {
	Package
	cpu *Object
}

// Cpu returns the single Cpu object. It panics with ErrNotInitialized on a
// value not produced by ParseConfigPackage.
func (c *ConfigPackage) Cpu() Object {
	if c == nil || c.cpu == nil {
		panic(ErrNotInitialized)
	}
	return *c.cpu
}

// CpuDir returns the directory of the Cpu package.
func (c *ConfigPackage) CpuDir(projectRoot location.Location) location.Location {
	return c.Cpu().ResolveLocation(projectRoot, c.Dir())
}

// CpuPackage is the Cpu.pkg of a configuration with the CPU build settings.
type CpuPackage struct {
	Package
	config *CpuConfig
}

// Config returns the parsed CPU configuration. It panics with
// ErrNotInitialized on a value not produced by ParseCpuPackage.
func (c *CpuPackage) Config() CpuConfig {
	if c == nil || c.config == nil {
		panic(ErrNotInitialized)
	}
	cfg := *c.config
	cfg.Build.AnsicIncludeDirs = append([]string(nil), c.config.Build.AnsicIncludeDirs...)
	return cfg
}

// CpuConfig is the <Configuration> section of a Cpu.pkg.
type CpuConfig struct {
	ModuleID       string        `json:"module_id,omitempty" yaml:"module_id,omitempty"`
	RuntimeVersion string        `json:"runtime_version,omitempty" yaml:"runtime_version,omitempty"`
	Build          BuildSettings `json:"build" yaml:"build"`
}

// BuildSettings is the <Build> element of a Cpu.pkg. Include directories are
// kept as declared: project root relative fragments in declaration order.
type BuildSettings struct {
	GccVersion                  string   `json:"gcc_version,omitempty" yaml:"gcc_version,omitempty"`
	AnsicIncludeDirs            []string `json:"ansic_include_dirs,omitempty" yaml:"ansic_include_dirs,omitempty"`
	AdditionalBuildOptions      string   `json:"additional_build_options,omitempty" yaml:"additional_build_options,omitempty"`
	AnsicAdditionalBuildOptions string   `json:"ansic_additional_build_options,omitempty" yaml:"ansic_additional_build_options,omitempty"`
}

var (
	_ File = (*Package)(nil)
	_ File = (*ConfigPackage)(nil)
	_ File = (*CpuPackage)(nil)
)
