package workspace

import (
	"github.com/fbkclanna/asws/internal/location"
	"github.com/fbkclanna/asws/internal/projfile"
)

// Paths holds the standard directories of a project.
type Paths = projfile.Paths

// Configuration is one hardware configuration below Physical/.
type Configuration struct {
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description,omitempty" yaml:"description,omitempty"`
	RootPath    location.Location `json:"root_path" yaml:"root_path"`
	CpuName     string            `json:"cpu_name" yaml:"cpu_name"`
	CpuPath     location.Location `json:"cpu_path" yaml:"cpu_path"`
}

// Project is a discovered project. Values are shared between callers of the
// same snapshot and must not be modified.
type Project struct {
	Name                string          `json:"name" yaml:"name"`
	Paths               Paths           `json:"paths" yaml:"paths"`
	ASVersion           string          `json:"as_version,omitempty" yaml:"as_version,omitempty"`
	Description         string          `json:"description,omitempty" yaml:"description,omitempty"`
	ActiveConfiguration string          `json:"active_configuration,omitempty" yaml:"active_configuration,omitempty"`
	Configurations      []Configuration `json:"configurations" yaml:"configurations"`
}

// Contains reports whether loc is the project root or lies inside it.
func (p *Project) Contains(loc location.Location) bool {
	root := p.Paths.ProjectRoot
	return root.Equal(loc) || location.IsSubOf(root, loc)
}

// Configuration returns the configuration with the given name.
func (p *Project) Configuration(name string) (Configuration, bool) {
	for _, c := range p.Configurations {
		if c.Name == name {
			return c, true
		}
	}
	return Configuration{}, false
}

// ConfigurationFor picks the configuration used for loc: the one whose
// directory contains loc, else the active configuration, else the first.
func (p *Project) ConfigurationFor(loc location.Location) (Configuration, bool) {
	for _, c := range p.Configurations {
		if c.RootPath.Equal(loc) || location.IsSubOf(c.RootPath, loc) {
			return c, true
		}
	}
	if c, ok := p.Configuration(p.ActiveConfiguration); ok {
		return c, true
	}
	if len(p.Configurations) > 0 {
		return p.Configurations[0], true
	}
	return Configuration{}, false
}
