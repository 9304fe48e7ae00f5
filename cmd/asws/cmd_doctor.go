package main

import (
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/asws/internal/workspace"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the workspace for common issues",
		RunE:  runDoctor,
	}
}

// failureCounter counts project files that could not be loaded.
type failureCounter struct{ failed atomic.Int32 }

func (*failureCounter) ScanStarted(int) {}

func (c *failureCounter) ProjectScanned(_ string, ok bool) {
	if !ok {
		c.failed.Add(1)
	}
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	failures := &failureCounter{}
	e, err := loadEnv(cmd, workspace.WithObserver(failures))
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	ok := true

	for _, root := range e.ws.Roots() {
		_, _ = fmt.Fprintf(out, "Checking root %s... ", root)
		info, err := os.Stat(root.String())
		switch {
		case err != nil:
			_, _ = fmt.Fprintln(out, "NOT FOUND")
			ok = false
		case !info.IsDir():
			_, _ = fmt.Fprintln(out, "NOT A DIRECTORY")
			ok = false
		default:
			_, _ = fmt.Fprintln(out, "OK")
		}
	}

	n := e.ws.UpdateProjects(cmd.Context())
	_, _ = fmt.Fprintf(out, "Found %d projects", n)
	if f := failures.failed.Load(); f > 0 {
		_, _ = fmt.Fprintf(out, ", %d project files could not be loaded (see log)", f)
		ok = false
	}
	_, _ = fmt.Fprintln(out)

	for _, p := range e.ws.Projects(cmd.Context()) {
		if !checkProject(cmd, e, p, out) {
			ok = false
		}
	}

	if ok {
		_, _ = fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	}
	_, _ = fmt.Fprintln(out, "\nSome checks failed. See above for details.")
	return fmt.Errorf("doctor checks failed")
}

func checkProject(cmd *cobra.Command, e *env, p *workspace.Project, out io.Writer) bool {
	_, _ = fmt.Fprintf(out, "Project %s (%s)\n", p.Name, p.Paths.ProjectRoot)
	if len(p.Configurations) == 0 {
		_, _ = fmt.Fprintln(out, "  no valid configuration found")
		return false
	}
	if p.ActiveConfiguration != "" {
		if _, found := p.Configuration(p.ActiveConfiguration); !found {
			_, _ = fmt.Fprintf(out, "  Warning: active configuration %q does not exist\n", p.ActiveConfiguration)
		}
	}

	ok := true
	for _, c := range p.Configurations {
		_, _ = fmt.Fprintf(out, "  Checking configuration %s... ", c.Name)
		info := e.ws.CBuildInformation(cmd.Context(), c.RootPath)
		if info == nil {
			_, _ = fmt.Fprintln(out, "FAILED (Cpu.pkg could not be loaded)")
			ok = false
			continue
		}
		_, _ = fmt.Fprintf(out, "OK (%s)\n", info.ModuleID)
		for _, dir := range info.IncludeDirs {
			if _, err := os.Stat(dir.String()); err != nil {
				_, _ = fmt.Fprintf(out, "    Warning: include directory %s does not exist\n", dir)
			}
		}
	}
	return ok
}
