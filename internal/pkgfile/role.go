package pkgfile

import "strings"

// Role selects the validation applied to a package file.
type Role int

const (
	RolePackage Role = iota
	RolePhysical
	RoleConfiguration
	RoleCpu
)

// Well known package file names.
const (
	PhysicalFileName = "Physical.pkg"
	ConfigFileName   = "Config.pkg"
	CpuFileName      = "Cpu.pkg"
)

func (r Role) String() string {
	switch r {
	case RolePhysical:
		return "physical"
	case RoleConfiguration:
		return "configuration"
	case RoleCpu:
		return "cpu"
	default:
		return "package"
	}
}

// rootType returns the required root element, or "" if any root is accepted.
func (r Role) rootType() string {
	switch r {
	case RolePhysical:
		return "Physical"
	case RoleConfiguration:
		return "Configuration"
	case RoleCpu:
		return "Cpu"
	default:
		return ""
	}
}

// RoleForFile returns the role implied by a package file name.
func RoleForFile(name string) Role {
	switch {
	case strings.EqualFold(name, PhysicalFileName):
		return RolePhysical
	case strings.EqualFold(name, ConfigFileName):
		return RoleConfiguration
	case strings.EqualFold(name, CpuFileName):
		return RoleCpu
	default:
		return RolePackage
	}
}
