package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/fbkclanna/asws/internal/projfile"
)

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-scan the workspace whenever project files change",
		RunE:  runWatch,
	}
	cmd.Flags().Duration("debounce", 0, "Quiet period before a re-scan (default from config, 500ms)")
	return cmd
}

func runWatch(cmd *cobra.Command, _ []string) error {
	e, err := loadEnv(cmd)
	if err != nil {
		return err
	}
	debounce := e.cfg.Watch.Interval()
	if cmd.Flags().Changed("debounce") {
		debounce, _ = cmd.Flags().GetDuration("debounce")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	for _, root := range e.ws.Roots() {
		if err := watchRecursive(w, root.String()); err != nil {
			return fmt.Errorf("watching %s: %w", root, err)
		}
	}

	out := cmd.OutOrStdout()
	n := e.ws.UpdateProjects(ctx)
	_, _ = fmt.Fprintf(out, "Watching %d projects. Press Ctrl+C to stop.\n", n)

	rescan := func() {
		n := e.ws.UpdateProjects(ctx)
		_, _ = fmt.Fprintf(out, "Re-scanned: %d projects (scan %s).\n", n, e.ws.ScanID())
	}
	addDir := func(path string) bool {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			return false
		}
		if err := watchRecursive(w, path); err != nil {
			e.log.Warn("failed to watch new directory", zap.String("path", path), zap.Error(err))
		}
		return true
	}
	return watchLoop(ctx, w.Events, w.Errors, debounce, rescan, addDir, e.log)
}

// watchLoop collects file events and calls rescan once no relevant event
// arrived for the debounce period. addDir is called for created paths and
// reports whether the path was a directory.
func watchLoop(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error, debounce time.Duration,
	rescan func(), addDir func(string) bool, log *zap.Logger) error {
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			relevant := isProjectFile(ev.Name)
			if ev.Has(fsnotify.Create) && addDir(ev.Name) {
				relevant = true
			}
			if ev.Has(fsnotify.Remove) || ev.Has(fsnotify.Rename) {
				// Removed directories cannot be told from files anymore.
				relevant = relevant || filepath.Ext(ev.Name) == ""
			}
			if !relevant {
				continue
			}
			log.Debug("project file changed", zap.String("path", ev.Name), zap.Stringer("op", ev.Op))
			timer.Reset(debounce)
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			log.Warn("watch error", zap.Error(err))
		case <-timer.C:
			rescan()
		}
	}
}

// isProjectFile reports whether a change of name can alter the project set.
func isProjectFile(name string) bool {
	base := filepath.Base(name)
	ext := filepath.Ext(base)
	return strings.EqualFold(ext, projfile.Extension) ||
		strings.EqualFold(ext, ".pkg") ||
		strings.EqualFold(base, projfile.SettingsFileName)
}

// skippedDirs hold build output or VCS data and never contain project files
// of interest.
var skippedDirs = map[string]bool{"Temp": true, "Binaries": true, ".git": true}

func watchRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && skippedDirs[d.Name()] {
			return filepath.SkipDir
		}
		return w.Add(p)
	})
}
