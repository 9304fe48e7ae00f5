// Package testutil builds sample Automation Studio projects for tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/fbkclanna/asws/internal/fsys"
)

// Config describes one configuration of a sample project.
type Config struct {
	Name        string
	Description string
	Cpu         string
	ModuleID    string
	IncludeDirs []string
	// Undeclared leaves the configuration out of Physical.pkg.
	Undeclared bool
}

// Project describes a sample project.
type Project struct {
	Name        string
	Description string
	Active      string
	Configs     []Config
}

// SimpleProject returns a project with one X20 configuration.
func SimpleProject(name string) Project {
	return Project{
		Name:   name,
		Active: "Config1",
		Configs: []Config{{
			Name:        "Config1",
			Cpu:         "X20CP1586",
			ModuleID:    "X20CP1586",
			IncludeDirs: []string{"Logical/Include", "../Shared/Include"},
		}},
	}
}

// Files returns the project files keyed by slash separated path relative to
// the project directory.
func (p Project) Files() map[string]string {
	files := map[string]string{
		p.Name + ".apj": fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<?AutomationStudio Version="4.10.3.60 FP" WorkingVersion="4.10"?>
<Project Version="1.00.0" Edition="Standard" Description=%s xmlns="http://br-automation.co.at/AS/Project">
  <ANSIC DefaultIncludes="true" />
</Project>
`, attr(p.Description)),
		"Logical/Package.pkg": `<?xml version="1.0" encoding="utf-8"?>
<?AutomationStudio Version=4.10.3.60 FP?>
<Package xmlns="http://br-automation.co.at/AS/Package">
  <Objects>
    <Object Type="Program" Language="ANSIC">Main</Object>
  </Objects>
</Package>
`,
	}
	if p.Active != "" {
		files["LastUser.set"] = fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<ProjectSettings Version="4.10.3.60">
  <ConfigurationManager ActiveConfigurationName=%s />
</ProjectSettings>
`, attr(p.Active))
	}

	var physical strings.Builder
	for _, c := range p.Configs {
		if !c.Undeclared {
			fmt.Fprintf(&physical, "    <Object Type=\"Configuration\" Description=%s>%s</Object>\n", attr(c.Description), c.Name)
		}
		files["Physical/"+c.Name+"/Config.pkg"] = fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<?AutomationStudio Version=4.10.3.60 FP?>
<Configuration xmlns="http://br-automation.co.at/AS/Configuration">
  <Objects>
    <Object Type="File">Hardware.hw</Object>
    <Object Type="Cpu">%s</Object>
  </Objects>
</Configuration>
`, c.Cpu)
		files["Physical/"+c.Name+"/"+c.Cpu+"/Cpu.pkg"] = fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<?AutomationStudio Version=4.10.3.60 FP?>
<Cpu xmlns="http://br-automation.co.at/AS/Cpu">
  <Objects>
    <Object Type="File">Cpu.per</Object>
  </Objects>
  <Configuration ModuleId=%s>
    <AutomationRuntime Version="B4.93" />
    <Build GccVersion="6.3.0" AnsicIncludeDirectories=%s AdditionalBuildOptions="-D SIM" AnsicAdditionalBuildOptions="-Wall" />
  </Configuration>
</Cpu>
`, attr(c.ModuleID), attr(strings.Join(c.IncludeDirs, ";")))
	}
	files["Physical/Physical.pkg"] = `<?xml version="1.0" encoding="utf-8"?>
<?AutomationStudio Version=4.10.3.60 FP?>
<Physical xmlns="http://br-automation.co.at/AS/Physical">
  <Objects>
` + physical.String() + `  </Objects>
</Physical>
`
	return files
}

// WriteProject writes p below dir and returns the project directory.
func WriteProject(t *testing.T, dir string, p Project) string {
	t.Helper()
	root := filepath.Join(dir, p.Name)
	files := p.Files()
	for _, name := range sortedKeys(files) {
		WriteFile(t, filepath.Join(root, filepath.FromSlash(name)), files[name])
	}
	return root
}

// AddProject stores p below dir in m and returns the project directory.
func AddProject(m *fsys.Memory, dir string, p Project) string {
	root := dir + "/" + p.Name
	for name, content := range p.Files() {
		m.Add(root+"/"+name, content)
	}
	return root
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { //nolint:gosec // test directory
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { //nolint:gosec // test file
		t.Fatal(err)
	}
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;")

// attr quotes s as an XML attribute value.
func attr(s string) string {
	return `"` + attrEscaper.Replace(s) + `"`
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
