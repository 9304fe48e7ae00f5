package workspace

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fbkclanna/asws/internal/buildcfg"
	"github.com/fbkclanna/asws/internal/location"
	"github.com/fbkclanna/asws/internal/pkgfile"
	"github.com/fbkclanna/asws/internal/projfile"
)

const projectPattern = "**/*" + projfile.Extension

// UpdateProjects re-scans all roots and replaces the snapshot. Project files
// that cannot be loaded are logged and skipped. It returns the number of
// projects in the new snapshot. A cancelled scan keeps the previous snapshot
// and returns its size.
func (a *Aggregator) UpdateProjects(ctx context.Context) int {
	id := uuid.NewString()
	log := a.log.With(zap.String("scan_id", id))
	start := time.Now()
	log.Debug("scan started", zap.Int("roots", len(a.roots)))

	files := a.discover(ctx, log)
	if a.observer != nil {
		a.observer.ScanStarted(len(files))
	}

	results := make([]*Project, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.jobs)
	for i, file := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.loadProject(gctx, file, log)
			if results[i] == nil {
				a.metrics.ProjectFailures.Inc()
			}
			if a.observer != nil {
				a.observer.ProjectScanned(file.String(), results[i] != nil)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil || ctx.Err() != nil {
		log.Warn("scan cancelled, keeping previous projects", zap.Error(ctx.Err()))
		if s := a.snap.Load(); s != nil {
			return len(s.projects)
		}
		return 0
	}

	projects := a.dedupe(results, log)
	sortProjects(projects)
	a.snap.Store(&snapshot{
		id:       id,
		projects: projects,
		infos:    map[cacheKey]*buildcfg.Info{},
	})

	elapsed := time.Since(start)
	a.metrics.ScansTotal.Inc()
	a.metrics.ScanDuration.Observe(elapsed.Seconds())
	a.metrics.Projects.Set(float64(len(projects)))
	log.Info("scan finished",
		zap.Int("projects", len(projects)),
		zap.Int("failed", len(files)-countLoaded(results)),
		zap.Duration("elapsed", elapsed),
	)
	return len(projects)
}

// discover lists the project files below every root, without excluded and
// repeated files.
func (a *Aggregator) discover(ctx context.Context, log *zap.Logger) []location.Location {
	var out []location.Location
	seen := map[string]bool{}
	for _, root := range a.roots {
		found, err := a.src.FindFiles(ctx, root, projectPattern)
		if err != nil {
			log.Error("failed to search root", zap.Stringer("root", root), zap.Error(err))
			continue
		}
		for _, f := range found {
			if seen[f.String()] || a.excluded(root, f) {
				continue
			}
			seen[f.String()] = true
			out = append(out, f)
		}
	}
	return out
}

func (a *Aggregator) excluded(root, file location.Location) bool {
	rel, ok := location.RelativePath(root, file)
	if !ok {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range a.exclude {
		if match, _ := doublestar.Match(pattern, rel); match {
			return true
		}
	}
	return false
}

// dedupe keeps one project per root. The first project file in path order
// wins.
func (a *Aggregator) dedupe(results []*Project, log *zap.Logger) []*Project {
	loaded := make([]*Project, 0, len(results))
	for _, p := range results {
		if p != nil {
			loaded = append(loaded, p)
		}
	}
	sort.SliceStable(loaded, func(i, j int) bool {
		return loaded[i].Paths.ProjectFile.String() < loaded[j].Paths.ProjectFile.String()
	})

	out := loaded[:0]
	byRoot := map[string]*Project{}
	for _, p := range loaded {
		key := p.Paths.ProjectRoot.String()
		if prev, ok := byRoot[key]; ok {
			log.Warn("multiple project files in one directory, ignoring",
				zap.Stringer("path", p.Paths.ProjectFile),
				zap.Stringer("kept", prev.Paths.ProjectFile),
			)
			continue
		}
		byRoot[key] = p
		out = append(out, p)
	}
	return out
}

// loadProject builds a Project from its descriptor. Only an unreadable
// descriptor fails the project; broken configurations are dropped.
func (a *Aggregator) loadProject(ctx context.Context, file location.Location, log *zap.Logger) *Project {
	pf := a.projects.Project(ctx, file)
	if pf == nil {
		return nil
	}
	paths := pf.Paths()
	p := &Project{
		Name:        pf.Name(),
		Paths:       paths,
		ASVersion:   pf.ASVersion(),
		Description: pf.Description(),
	}
	if s := a.projects.Settings(ctx, paths.ProjectRoot.Join(projfile.SettingsFileName)); s != nil {
		p.ActiveConfiguration = s.ActiveConfiguration()
	}
	p.Configurations = a.loadConfigurations(ctx, paths, log)
	log.Debug("project loaded",
		zap.Stringer("path", file),
		zap.Int("configurations", len(p.Configurations)),
	)
	return p
}

// loadConfigurations returns the configurations below Physical/ that have a
// valid Config.pkg. Configurations declared in Physical.pkg come first in
// declaration order, the rest follow sorted by name.
func (a *Aggregator) loadConfigurations(ctx context.Context, paths Paths, log *zap.Logger) []Configuration {
	var declared []pkgfile.Object
	physicalFile := paths.Physical.Join(pkgfile.PhysicalFileName)
	if physical := a.packages.Physical(ctx, physicalFile); physical != nil {
		declared = physical.ObjectsOfType(pkgfile.TypeConfiguration)
	}

	found, err := a.src.FindFiles(ctx, paths.Physical, "*/"+pkgfile.ConfigFileName)
	if err != nil {
		log.Error("failed to search configurations", zap.Stringer("path", paths.Physical), zap.Error(err))
		return nil
	}

	var out []Configuration
	for _, file := range found {
		pkg := a.packages.Config(ctx, file)
		if pkg == nil {
			continue
		}
		dir := pkg.Dir()
		cpu := pkg.Cpu()
		out = append(out, Configuration{
			Name:     dir.Base(),
			RootPath: dir,
			CpuName:  cpu.Name,
			CpuPath:  pkg.CpuDir(paths.ProjectRoot),
		})
	}

	rank := func(c *Configuration) int {
		for i, o := range declared {
			if strings.EqualFold(o.Name, c.Name) {
				c.Description = o.Description
				return i
			}
		}
		return len(declared)
	}
	ranks := make(map[string]int, len(out))
	for i := range out {
		ranks[out[i].Name] = rank(&out[i])
	}
	sort.SliceStable(out, func(i, j int) bool {
		ri, rj := ranks[out[i].Name], ranks[out[j].Name]
		if ri != rj {
			return ri < rj
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func countLoaded(results []*Project) int {
	n := 0
	for _, p := range results {
		if p != nil {
			n++
		}
	}
	return n
}
