package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/asws/internal/ui"
	"github.com/fbkclanna/asws/internal/workspace"
)

func newProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "List the Automation Studio projects in the workspace",
		RunE:  runProjects,
	}
	cmd.Flags().Bool("json", false, "Output as JSON")
	cmd.Flags().Bool("yaml", false, "Output as YAML")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")
	return cmd
}

func runProjects(cmd *cobra.Command, _ []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	asYAML, _ := cmd.Flags().GetBool("yaml")

	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	projects := e.ws.Projects(cmd.Context())
	if projects == nil {
		projects = []*workspace.Project{}
	}

	out := cmd.OutOrStdout()
	switch {
	case asJSON:
		return writeJSON(out, projects)
	case asYAML:
		return writeYAML(out, projects)
	}

	tbl := ui.NewTable(out, "PROJECT", "ROOT", "AS VERSION", "ACTIVE", "CONFIGURATIONS")
	for _, p := range projects {
		names := make([]string, len(p.Configurations))
		for i, c := range p.Configurations {
			names[i] = c.Name
		}
		tbl.Row(p.Name, p.Paths.ProjectRoot, p.ASVersion, p.ActiveConfiguration, strings.Join(names, ","))
	}
	return tbl.Flush()
}
