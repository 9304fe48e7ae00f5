package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/asws/internal/asxml"
	"github.com/fbkclanna/asws/internal/fsys"
	"github.com/fbkclanna/asws/internal/location"
	"github.com/fbkclanna/asws/internal/pkgfile"
	"github.com/fbkclanna/asws/internal/projfile"
	"github.com/fbkclanna/asws/internal/ui"
)

func newPkgCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pkg <file>",
		Short: "Parse a package, project or settings file and show its contents",
		Long: `Parse a single file with the validation its name implies:
Physical.pkg, Config.pkg, Cpu.pkg, any other *.pkg, *.apj or LastUser.set.
Parse errors are reported instead of being skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: runPkg,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

type fileView struct {
	Path                string              `json:"path"`
	Role                string              `json:"role"`
	RootType            string              `json:"root_type,omitempty"`
	Header              asxml.Header        `json:"header"`
	Objects             []pkgfile.Object    `json:"objects,omitempty"`
	Cpu                 *pkgfile.Object     `json:"cpu,omitempty"`
	CpuConfig           *pkgfile.CpuConfig  `json:"cpu_config,omitempty"`
	Project             *projectView        `json:"project,omitempty"`
	ActiveConfiguration string              `json:"active_configuration,omitempty"`
	Resolved            []location.Location `json:"resolved,omitempty"`
}

type projectView struct {
	Name        string `json:"name"`
	Version     string `json:"version,omitempty"`
	Edition     string `json:"edition,omitempty"`
	Description string `json:"description,omitempty"`
}

func runPkg(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	path, err := location.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", args[0], err)
	}
	data, err := fsys.NewOS().ReadText(cmd.Context(), path)
	if err != nil {
		return err
	}
	view, err := describeFile(path, data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, view)
	}

	_, _ = fmt.Fprintf(out, "%s (%s", view.Path, view.Role)
	if view.Header.Version != "" {
		_, _ = fmt.Fprintf(out, ", AS %s", view.Header.Version)
	}
	_, _ = fmt.Fprintln(out, ")")
	switch {
	case view.Project != nil:
		_, _ = fmt.Fprintf(out, "Project %s %s %s\n", view.Project.Name, view.Project.Version, view.Project.Edition)
	case view.Role == "settings":
		_, _ = fmt.Fprintf(out, "Active configuration: %s\n", view.ActiveConfiguration)
	}
	if view.CpuConfig != nil {
		c := view.CpuConfig
		_, _ = fmt.Fprintf(out, "Module %s, runtime %s, gcc %s\n", c.ModuleID, c.RuntimeVersion, c.Build.GccVersion)
		_, _ = fmt.Fprintf(out, "Include directories: %s\n", strings.Join(c.Build.AnsicIncludeDirs, ";"))
	}
	if len(view.Objects) == 0 {
		return nil
	}
	tbl := ui.NewTable(out, "TYPE", "NAME", "DESCRIPTION")
	for _, o := range view.Objects {
		tbl.Row(o.Type, o.Name, o.Description)
	}
	return tbl.Flush()
}

// describeFile parses data according to the file name.
func describeFile(path location.Location, data []byte) (*fileView, error) {
	view := &fileView{Path: path.String()}
	switch {
	case strings.EqualFold(path.Ext(), projfile.Extension):
		f, err := projfile.Parse(path, data)
		if err != nil {
			return nil, err
		}
		view.Role = "project"
		view.RootType = "Project"
		view.Header = f.Header()
		view.Project = &projectView{Name: f.Name(), Version: f.Version(), Edition: f.Edition(), Description: f.Description()}
		return view, nil
	case strings.EqualFold(path.Base(), projfile.SettingsFileName):
		s, err := projfile.ParseSettings(path, data)
		if err != nil {
			return nil, err
		}
		view.Role = "settings"
		view.RootType = "ProjectSettings"
		view.ActiveConfiguration = s.ActiveConfiguration()
		return view, nil
	}

	role := pkgfile.RoleForFile(path.Base())
	f, err := pkgfile.Parse(path, data, role)
	if err != nil {
		return nil, err
	}
	view.Role = role.String()
	view.RootType = f.RootType()
	view.Header = f.Header()
	view.Objects = f.Objects()
	switch p := f.(type) {
	case *pkgfile.ConfigPackage:
		cpu := p.Cpu()
		view.Cpu = &cpu
	case *pkgfile.CpuPackage:
		cfg := p.Config()
		view.CpuConfig = &cfg
	case *pkgfile.Package:
		if role == pkgfile.RolePhysical {
			// Physical.pkg lives in <project>/Physical.
			view.Resolved = p.ResolveObjects(p.Dir().Parent())
		}
	}
	return view, nil
}
