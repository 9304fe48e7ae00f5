package main

import (
	"fmt"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fbkclanna/asws/internal/config"
	"github.com/fbkclanna/asws/internal/fsys"
	"github.com/fbkclanna/asws/internal/logging"
	"github.com/fbkclanna/asws/internal/workspace"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "asws",
		Short:         "Automation Studio workspace indexer",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := cmd.PersistentFlags()
	f.StringArray("root", nil, "Workspace root directory (repeatable, default \".\")")
	f.String("config", "", "Path to asws.yaml or asws.toml")
	f.String("log-level", "", "Log level: debug, info, warn, error")
	f.String("log-format", "", "Log format: console or json")
	f.Int("jobs", 0, "Number of projects loaded in parallel")
	f.StringSlice("exclude", nil, "Glob of project files to skip, relative to the root")

	cmd.AddCommand(
		newProjectsCmd(),
		newScanCmd(),
		newCBuildCmd(),
		newPkgCmd(),
		newDoctorCmd(),
		newWatchCmd(),
		newServeCmd(),
	)

	return cmd
}

// env is what every command needs: configuration, logger, metrics and the
// workspace aggregator.
type env struct {
	cfg *config.Config
	log *zap.Logger
	reg *prometheus.Registry
	ws  *workspace.Aggregator
}

// loadEnv merges the config file with the global flags and builds the
// aggregator. opts are applied after the configured ones.
func loadEnv(cmd *cobra.Command, opts ...workspace.Option) (*env, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logging.New(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format}, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	roots, err := cfg.RootLocations()
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	base := []workspace.Option{
		workspace.WithLogger(log),
		workspace.WithMetrics(workspace.NewMetrics(reg)),
		workspace.WithJobs(cfg.Jobs),
		workspace.WithExclude(cfg.Exclude...),
	}
	ws := workspace.New(fsys.NewOS(), roots, append(base, opts...)...)
	return &env{cfg: cfg, log: log, reg: reg, ws: ws}, nil
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	flags := cmd.Flags()
	path, _ := flags.GetString("config")

	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}

	if flags.Changed("root") {
		roots, _ := flags.GetStringArray("root")
		cfg.Roots = make([]string, len(roots))
		for i, r := range roots {
			abs, err := filepath.Abs(r)
			if err != nil {
				return nil, fmt.Errorf("resolving root %s: %w", r, err)
			}
			cfg.Roots[i] = abs
		}
	}
	if flags.Changed("log-level") {
		cfg.Log.Level, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-format") {
		cfg.Log.Format, _ = flags.GetString("log-format")
	}
	if flags.Changed("jobs") {
		cfg.Jobs, _ = flags.GetInt("jobs")
	}
	if flags.Changed("exclude") {
		exclude, _ := flags.GetStringSlice("exclude")
		cfg.Exclude = append(cfg.Exclude, exclude...)
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
