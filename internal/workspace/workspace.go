package workspace

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/fbkclanna/asws/internal/buildcfg"
	"github.com/fbkclanna/asws/internal/fsys"
	"github.com/fbkclanna/asws/internal/location"
	"github.com/fbkclanna/asws/internal/pkgfile"
	"github.com/fbkclanna/asws/internal/projfile"
)

// DefaultJobs is the number of projects loaded in parallel.
const DefaultJobs = 4

// ScanObserver is notified about scan progress.
type ScanObserver interface {
	ScanStarted(total int)
	ProjectScanned(projectFile string, ok bool)
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithLogger sets the logger. The default discards output.
func WithLogger(log *zap.Logger) Option {
	return func(a *Aggregator) {
		if log != nil {
			a.log = log
		}
	}
}

// WithMetrics sets the metrics. The default registers with a private registry.
func WithMetrics(m *Metrics) Option {
	return func(a *Aggregator) {
		if m != nil {
			a.metrics = m
		}
	}
}

// WithExclude skips project files whose root relative path matches one of
// the doublestar patterns.
func WithExclude(patterns ...string) Option {
	return func(a *Aggregator) { a.exclude = append(a.exclude, patterns...) }
}

// WithJobs sets the number of projects loaded in parallel.
func WithJobs(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.jobs = n
		}
	}
}

// WithObserver sets a ScanObserver.
func WithObserver(o ScanObserver) Option {
	return func(a *Aggregator) { a.observer = o }
}

// Aggregator owns the project set of a workspace.
type Aggregator struct {
	src      fsys.Source
	roots    []location.Location
	exclude  []string
	jobs     int
	log      *zap.Logger
	metrics  *Metrics
	observer ScanObserver

	projects *projfile.Loader
	packages *pkgfile.Loader

	snap  atomic.Pointer[snapshot]
	first singleflight.Group
}

type snapshot struct {
	id       string
	projects []*Project

	mu    sync.Mutex
	infos map[cacheKey]*buildcfg.Info
}

type cacheKey struct {
	root          string
	configuration string
}

// New returns an Aggregator for the given workspace roots. No scan happens
// until the first query or UpdateProjects call.
func New(src fsys.Source, roots []location.Location, opts ...Option) *Aggregator {
	a := &Aggregator{
		src:   src,
		roots: append([]location.Location(nil), roots...),
		jobs:  DefaultJobs,
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.metrics == nil {
		a.metrics = NewMetrics(prometheus.NewRegistry())
	}
	a.projects = projfile.NewLoader(src, a.log)
	a.packages = pkgfile.NewLoader(src, a.log)
	return a
}

// Roots returns the workspace roots.
func (a *Aggregator) Roots() []location.Location {
	return append([]location.Location(nil), a.roots...)
}

// Projects returns the projects of the current snapshot, sorted by root.
// The first call scans the workspace; concurrent first calls share the scan.
func (a *Aggregator) Projects(ctx context.Context) []*Project {
	return append([]*Project(nil), a.current(ctx).projects...)
}

// ScanID returns the id of the current snapshot, or "" before the first scan.
func (a *Aggregator) ScanID() string {
	if s := a.snap.Load(); s != nil {
		return s.id
	}
	return ""
}

// ProjectForLocation returns the project whose root equals or contains loc.
// With nested projects the deepest root wins. It returns nil if no project
// matches.
func (a *Aggregator) ProjectForLocation(ctx context.Context, loc location.Location) *Project {
	return a.current(ctx).projectFor(loc)
}

// CBuildInformation returns the C build information for loc, or nil when loc
// is outside every project or its configuration cannot be resolved. Results
// are cached until the next scan.
func (a *Aggregator) CBuildInformation(ctx context.Context, loc location.Location) *buildcfg.Info {
	s := a.current(ctx)
	p := s.projectFor(loc)
	if p == nil {
		a.metrics.BuildLookups.WithLabelValues(lookupNoProject).Inc()
		return nil
	}
	cfg, ok := p.ConfigurationFor(loc)
	if !ok {
		a.metrics.BuildLookups.WithLabelValues(lookupNoConfiguration).Inc()
		a.log.Debug("project has no configuration", zap.String("project", p.Name))
		return nil
	}

	key := cacheKey{root: p.Paths.ProjectRoot.String(), configuration: cfg.Name}
	if info := s.cached(key); info != nil {
		a.metrics.BuildLookups.WithLabelValues(lookupHit).Inc()
		return info.Clone()
	}

	cpu := a.packages.Cpu(ctx, cfg.CpuPath.Join(pkgfile.CpuFileName))
	if cpu == nil {
		a.metrics.BuildLookups.WithLabelValues(lookupError).Inc()
		return nil
	}
	info := s.store(key, buildcfg.Resolve(cpu, p.Paths.ProjectRoot, cfg.Name))
	a.metrics.BuildLookups.WithLabelValues(lookupMiss).Inc()
	return info.Clone()
}

// current returns the snapshot, scanning once if there is none yet.
func (a *Aggregator) current(ctx context.Context) *snapshot {
	for {
		if s := a.snap.Load(); s != nil {
			return s
		}
		if ctx.Err() != nil {
			return &snapshot{infos: map[cacheKey]*buildcfg.Info{}}
		}
		// A shared scan started by a caller that was cancelled leaves no
		// snapshot; callers with a live context scan again.
		_, _, _ = a.first.Do("scan", func() (any, error) {
			if a.snap.Load() == nil {
				a.UpdateProjects(ctx)
			}
			return nil, nil
		})
	}
}

func (s *snapshot) projectFor(loc location.Location) *Project {
	var best *Project
	for _, p := range s.projects {
		if !p.Contains(loc) {
			continue
		}
		if best == nil || location.IsSubOf(best.Paths.ProjectRoot, p.Paths.ProjectRoot) {
			best = p
		}
	}
	return best
}

func (s *snapshot) cached(key cacheKey) *buildcfg.Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.infos[key]
}

// store keeps the first value stored for key and returns it.
func (s *snapshot) store(key cacheKey, info *buildcfg.Info) *buildcfg.Info {
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.infos[key]; ok {
		return prev
	}
	s.infos[key] = info
	return info
}

func sortProjects(projects []*Project) {
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].Paths.ProjectRoot.String() < projects[j].Paths.ProjectRoot.String()
	})
}
