package ui

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"
)

// Progress tracks completion of parallel tasks with a simple counter display.
// It can observe workspace scans.
type Progress struct {
	out       io.Writer
	total     atomic.Int32
	completed atomic.Int32
	mu        sync.Mutex
}

// NewProgress creates a progress tracker for n tasks.
func NewProgress(out io.Writer, total int) *Progress {
	p := &Progress{out: out}
	p.total.Store(int32(total)) //nolint:gosec // task counts are small
	return p
}

// Done marks one task as completed and prints the current progress.
func (p *Progress) Done(label string) {
	n := int(p.completed.Add(1))
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, "[%d/%d] %s\n", n, p.total.Load(), label)
}

// Log prints an informational message within the progress context.
func (p *Progress) Log(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.out, format+"\n", args...)
}

// ScanStarted resets the counter for a scan of total project files.
func (p *Progress) ScanStarted(total int) {
	p.total.Store(int32(total)) //nolint:gosec // task counts are small
	p.completed.Store(0)
}

// ProjectScanned reports one loaded project file.
func (p *Progress) ProjectScanned(path string, ok bool) {
	if ok {
		p.Done(path)
		return
	}
	p.Done(path + " (failed)")
}
