package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fbkclanna/asws/internal/ui"
	"github.com/fbkclanna/asws/internal/workspace"
)

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Scan the workspace roots and report progress",
		RunE:  runScan,
	}
}

func runScan(cmd *cobra.Command, _ []string) error {
	progress := ui.NewProgress(cmd.ErrOrStderr(), 0)
	e, err := loadEnv(cmd, workspace.WithObserver(progress))
	if err != nil {
		return err
	}
	for _, root := range e.ws.Roots() {
		progress.Log("Scanning %s", root)
	}
	n := e.ws.UpdateProjects(cmd.Context())
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Scan complete: %d projects (scan %s).\n", n, e.ws.ScanID())
	return nil
}
