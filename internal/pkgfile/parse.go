package pkgfile

import (
	"fmt"
	"strings"

	"github.com/fbkclanna/asws/internal/asxml"
	"github.com/fbkclanna/asws/internal/location"
)

// ErrInvariant is returned when a file violates the structure its role requires.
var ErrInvariant = asxml.ErrInvariant

// Parse parses data as a package file of the given role. The returned File
// is nil whenever err is not.
func Parse(path location.Location, data []byte, role Role) (File, error) {
	switch role {
	case RoleConfiguration:
		c, err := ParseConfigPackage(path, data)
		if err != nil {
			return nil, err
		}
		return c, nil
	case RoleCpu:
		c, err := ParseCpuPackage(path, data)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		p, err := ParsePackage(path, data, role)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

// ParsePackage parses a generic or Physical package file.
func ParsePackage(path location.Location, data []byte, role Role) (*Package, error) {
	doc, err := asxml.Parse(data)
	if err != nil {
		return nil, err
	}
	return newPackage(path, doc, role)
}

// ParseConfigPackage parses a Config.pkg. It must have a <Configuration>
// root and exactly one Cpu object.
func ParseConfigPackage(path location.Location, data []byte) (*ConfigPackage, error) {
	doc, err := asxml.Parse(data)
	if err != nil {
		return nil, err
	}
	pkg, err := newPackage(path, doc, RoleConfiguration)
	if err != nil {
		return nil, err
	}
	cpus := pkg.ObjectsOfType(TypeCpu)
	switch {
	case len(cpus) == 0:
		return nil, fmt.Errorf("pkgfile: %w: no Cpu object found", ErrInvariant)
	case len(cpus) > 1:
		return nil, fmt.Errorf("pkgfile: %w: too many Cpu objects found (%d)", ErrInvariant, len(cpus))
	}
	return &ConfigPackage{Package: *pkg, cpu: &cpus[0]}, nil
}

// ParseCpuPackage parses a Cpu.pkg including its build settings. A missing
// <Configuration> or <Build> section yields empty settings.
func ParseCpuPackage(path location.Location, data []byte) (*CpuPackage, error) {
	doc, err := asxml.Parse(data)
	if err != nil {
		return nil, err
	}
	pkg, err := newPackage(path, doc, RoleCpu)
	if err != nil {
		return nil, err
	}
	var raw cpuXML
	if err := doc.Decode(&raw); err != nil {
		return nil, err
	}
	return &CpuPackage{Package: *pkg, config: raw.config()}, nil
}

func newPackage(path location.Location, doc *asxml.Document, role Role) (*Package, error) {
	if want := role.rootType(); want != "" && doc.RootType != want {
		return nil, fmt.Errorf("pkgfile: %w: root element is <%s>, expected <%s>", ErrInvariant, doc.RootType, want)
	}
	objs := make([]Object, len(doc.Objects))
	for i, d := range doc.Objects {
		objs[i] = Object{Type: d.Type, Name: d.Name, Description: d.Description}
	}
	return &Package{
		path:     path,
		role:     role,
		rootType: doc.RootType,
		header:   doc.Header,
		objects:  objs,
	}, nil
}

type cpuXML struct {
	Configuration *struct {
		ModuleID string `xml:"ModuleId,attr"`
		Runtime  struct {
			Version string `xml:"Version,attr"`
		} `xml:"AutomationRuntime"`
		Build *struct {
			GccVersion                  string `xml:"GccVersion,attr"`
			AnsicIncludeDirectories     string `xml:"AnsicIncludeDirectories,attr"`
			AdditionalBuildOptions      string `xml:"AdditionalBuildOptions,attr"`
			AnsicAdditionalBuildOptions string `xml:"AnsicAdditionalBuildOptions,attr"`
		} `xml:"Build"`
	} `xml:"Configuration"`
}

func (c *cpuXML) config() *CpuConfig {
	cfg := &CpuConfig{}
	if c.Configuration == nil {
		return cfg
	}
	cfg.ModuleID = c.Configuration.ModuleID
	cfg.RuntimeVersion = c.Configuration.Runtime.Version
	if b := c.Configuration.Build; b != nil {
		cfg.Build = BuildSettings{
			GccVersion:                  b.GccVersion,
			AnsicIncludeDirs:            splitList(b.AnsicIncludeDirectories),
			AdditionalBuildOptions:      b.AdditionalBuildOptions,
			AnsicAdditionalBuildOptions: b.AnsicAdditionalBuildOptions,
		}
	}
	return cfg
}

// splitList splits a semicolon separated attribute value.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ";") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
