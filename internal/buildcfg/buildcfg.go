package buildcfg

import (
	"strings"

	"github.com/fbkclanna/asws/internal/location"
	"github.com/fbkclanna/asws/internal/pkgfile"
)

// Info is the C build information of one project configuration.
type Info struct {
	Project           location.Location   `json:"project" yaml:"project"`
	Configuration     string              `json:"configuration" yaml:"configuration"`
	CpuName           string              `json:"cpu_name" yaml:"cpu_name"`
	ModuleID          string              `json:"module_id,omitempty" yaml:"module_id,omitempty"`
	RuntimeVersion    string              `json:"runtime_version,omitempty" yaml:"runtime_version,omitempty"`
	GccVersion        string              `json:"gcc_version,omitempty" yaml:"gcc_version,omitempty"`
	IncludeDirs       []location.Location `json:"include_dirs" yaml:"include_dirs"`
	BuildOptions      []string            `json:"build_options,omitempty" yaml:"build_options,omitempty"`
	AnsicBuildOptions []string            `json:"ansic_build_options,omitempty" yaml:"ansic_build_options,omitempty"`
	SystemGeneration  string              `json:"system_generation,omitempty" yaml:"system_generation,omitempty"`
	Architecture      string              `json:"architecture,omitempty" yaml:"architecture,omitempty"`
}

// Resolve builds the Info for cpu. It returns nil when cpu is nil.
func Resolve(cpu *pkgfile.CpuPackage, projectRoot location.Location, configuration string) *Info {
	if cpu == nil {
		return nil
	}
	cfg := cpu.Config()
	plc := LookupPLC(cfg.ModuleID)
	return &Info{
		Project:           projectRoot,
		Configuration:     configuration,
		CpuName:           cpu.Dir().Base(),
		ModuleID:          cfg.ModuleID,
		RuntimeVersion:    cfg.RuntimeVersion,
		GccVersion:        cfg.Build.GccVersion,
		IncludeDirs:       ResolveAnsiCIncludeDirs(cpu, projectRoot),
		BuildOptions:      SplitShellArgs(cfg.Build.AdditionalBuildOptions),
		AnsicBuildOptions: SplitShellArgs(cfg.Build.AnsicAdditionalBuildOptions),
		SystemGeneration:  plc.SystemGeneration,
		Architecture:      plc.Architecture,
	}
}

// ResolveAnsiCIncludeDirs returns the absolute ANSI C include directories
// of cpu in declaration order. Fragments are relative to the project root.
// Adjacent duplicates are dropped.
func ResolveAnsiCIncludeDirs(cpu *pkgfile.CpuPackage, projectRoot location.Location) []location.Location {
	out := []location.Location{}
	if cpu == nil {
		return out
	}
	for _, frag := range cpu.Config().Build.AnsicIncludeDirs {
		dir := location.Join(projectRoot, frag)
		if n := len(out); n > 0 && out[n-1].Equal(dir) {
			continue
		}
		out = append(out, dir)
	}
	return out
}

// SplitShellArgs splits a build option string on white space.
func SplitShellArgs(raw string) []string {
	return strings.Fields(raw)
}

// Clone returns a deep copy of i.
func (i *Info) Clone() *Info {
	if i == nil {
		return nil
	}
	c := *i
	c.IncludeDirs = append([]location.Location(nil), i.IncludeDirs...)
	c.BuildOptions = append([]string(nil), i.BuildOptions...)
	c.AnsicBuildOptions = append([]string(nil), i.AnsicBuildOptions...)
	return &c
}
