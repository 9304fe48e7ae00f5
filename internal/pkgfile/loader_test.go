package pkgfile

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/fbkclanna/asws/internal/fsys"
	"github.com/fbkclanna/asws/internal/location"
)

func newObservedLoader(src fsys.Source) (*Loader, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewLoader(src, zap.New(core)), logs
}

func TestLoader_multiRootFailsClosed(t *testing.T) {
	src := fsys.NewMemory()
	src.Add("/proj/Physical/Config1/Config.pkg", `<?xml version="1.0" encoding="utf-8"?>
<root1>Hello1</root1>
<root2>Hello2</root2>`)
	l, logs := newObservedLoader(src)

	path := location.New("/proj/Physical/Config1/Config.pkg")
	if got := l.Config(context.Background(), path); got != nil {
		t.Fatalf("Config() = %v, want nil", got)
	}
	if got := l.Load(context.Background(), RoleConfiguration, path); got != nil {
		t.Fatalf("Load() = %v, want nil", got)
	}

	errs := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	if len(errs) != 2 {
		t.Fatalf("logged %d errors, want one per call", len(errs))
	}
	if errs[0].ContextMap()["path"] != path.String() {
		t.Errorf("logged path = %v", errs[0].ContextMap()["path"])
	}
}

func TestLoader_missingFile(t *testing.T) {
	l, logs := newObservedLoader(fsys.NewMemory())
	if got := l.Cpu(context.Background(), location.New("/none/Cpu.pkg")); got != nil {
		t.Fatal("expected nil for missing file")
	}
	if logs.Len() != 1 {
		t.Errorf("logged %d entries, want 1", logs.Len())
	}
}

func TestLoader_success(t *testing.T) {
	src := fsys.NewMemory()
	src.Add("/proj/Physical/Physical.pkg", `<Physical><Objects><Object Type="Configuration">C1</Object></Objects></Physical>`)
	src.Add("/proj/Physical/C1/Config.pkg", string(configPkg(`<Object Type="Cpu">PLC1</Object>`)))
	src.Add("/proj/Physical/C1/PLC1/Cpu.pkg", cpuPkg)
	src.Add("/proj/Logical/Package.pkg", `<Package><Objects><Object Type="Program">Main</Object></Objects></Package>`)
	l, logs := newObservedLoader(src)
	ctx := context.Background()

	if p := l.Physical(ctx, location.New("/proj/Physical/Physical.pkg")); p == nil || len(p.Objects()) != 1 {
		t.Errorf("Physical() = %v", p)
	}
	c := l.Config(ctx, location.New("/proj/Physical/C1/Config.pkg"))
	if c == nil {
		t.Fatal("Config() returned nil")
	}
	cpu := l.Cpu(ctx, c.CpuDir(location.New("/proj")).Join(CpuFileName))
	if cpu == nil || cpu.Config().ModuleID != "X20CP1586" {
		t.Errorf("Cpu() = %v", cpu)
	}
	if p := l.Package(ctx, location.New("/proj/Logical/Package.pkg")); p == nil {
		t.Error("Package() returned nil")
	}
	if f := l.Load(ctx, RoleForFile("Cpu.pkg"), location.New("/proj/Physical/C1/PLC1/Cpu.pkg")); f == nil || f.Role() != RoleCpu {
		t.Errorf("Load() = %v", f)
	}
	if logs.Len() != 0 {
		t.Errorf("unexpected log entries: %v", logs.All())
	}
}
