package buildcfg

import "regexp"

// System generations and architectures of B&R controllers.
const (
	SG3  = "SG3"
	SGC  = "SGC"
	SG4  = "SG4"
	IA32 = "IA32"
	Arm  = "Arm"
	M68K = "M68K"
)

// PLC describes the target family of a CPU module.
type PLC struct {
	Family           string `json:"family" yaml:"family"`
	SystemGeneration string `json:"system_generation" yaml:"system_generation"`
	Architecture     string `json:"architecture" yaml:"architecture"`
}

// Known reports whether the module id matched the lookup table.
func (p PLC) Known() bool { return p.Family != "" }

type plcRule struct {
	re  *regexp.Regexp
	plc PLC
}

// First match wins, so specific series precede the catch-all of a family.
var plcRules = []plcRule{
	{regexp.MustCompile(`^X20CP0[2-3]\d\d`), PLC{"X20", SGC, M68K}},
	{regexp.MustCompile(`^X20CP04\d\d`), PLC{"X20", SG4, Arm}},
	{regexp.MustCompile(`^X20C?CP[13]\d{3}`), PLC{"X20", SG4, IA32}},
	{regexp.MustCompile(`^X20EM`), PLC{"X20", SG4, Arm}},
	{regexp.MustCompile(`^X90CP`), PLC{"X90", SG4, Arm}},
	{regexp.MustCompile(`^(5APC|5PC|5PPC|4PPC|APC|PPC)`), PLC{"APC", SG4, IA32}},
	{regexp.MustCompile(`^4PP0`), PLC{"PowerPanel", SGC, M68K}},
	{regexp.MustCompile(`^(3CP|7CP|4PP2)`), PLC{"System2005", SG3, M68K}},
	{regexp.MustCompile(`^(PC_any|ArSim)`), PLC{"PC", SG4, IA32}},
}

// LookupPLC returns the target family of a module id such as "X20CP1586".
// Unknown ids yield a zero PLC. The table covers common series only.
func LookupPLC(moduleID string) PLC {
	for _, r := range plcRules {
		if r.re.MatchString(moduleID) {
			return r.plc
		}
	}
	return PLC{}
}
