package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/asws/internal/location"
	"github.com/fbkclanna/asws/internal/ui"
)

func newCBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cbuild <path>",
		Short: "Show the C build information for a file or directory",
		Args:  cobra.ExactArgs(1),
		RunE:  runCBuild,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	return cmd
}

func runCBuild(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")

	loc, err := location.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving %s: %w", args[0], err)
	}
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	info := e.ws.CBuildInformation(cmd.Context(), loc)
	if info == nil {
		return fmt.Errorf("no build information for %s", loc)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		return writeJSON(out, info)
	}

	includes := make([]string, len(info.IncludeDirs))
	for i, d := range info.IncludeDirs {
		includes[i] = d.String()
	}
	tbl := ui.NewTable(out, "KEY", "VALUE")
	tbl.Row("project", info.Project)
	tbl.Row("configuration", info.Configuration)
	tbl.Row("cpu", info.CpuName)
	tbl.Row("module", info.ModuleID)
	tbl.Row("runtime", info.RuntimeVersion)
	tbl.Row("gcc", info.GccVersion)
	tbl.Row("target", strings.TrimSpace(info.SystemGeneration+" "+info.Architecture))
	tbl.Row("includes", strings.Join(includes, ";"))
	tbl.Row("options", strings.Join(info.BuildOptions, " "))
	tbl.Row("ansic options", strings.Join(info.AnsicBuildOptions, " "))
	return tbl.Flush()
}
