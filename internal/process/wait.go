package process

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/giantswarm/ffharness/internal/logging"
	"k8s.io/apimachinery/pkg/util/sets"
	"k8s.io/apimachinery/pkg/util/wait"
)

// WaitConfig configures WaitForRelease.
type WaitConfig struct {
	Interval  time.Duration // Poll interval; must not exceed Timeout
	Timeout   time.Duration // Overall timeout
	Recursive bool          // Also scan all descendants of the process
	Inspector Inspector     // Optional (defaults to NewInspector())
	Logger    *slog.Logger  // Optional logger (defaults to the package logger)
}

// validate panics on out-of-range timing parameters. They come from code,
// not from runtime conditions, so a bad value is a programmer error.
func (c WaitConfig) validate() {
	if c.Interval < 0 {
		panic(fmt.Sprintf("ffharness: poll interval must not be negative, got %v", c.Interval))
	}
	if c.Timeout < 0 {
		panic(fmt.Sprintf("ffharness: timeout must not be negative, got %v", c.Timeout))
	}
	if c.Interval > c.Timeout {
		panic(fmt.Sprintf("ffharness: poll interval %v must not exceed timeout %v", c.Interval, c.Timeout))
	}
}

// WaitForRelease polls until neither pid nor, when cfg.Recursive is set, any
// of its descendants holds one of paths open. It returns false only when the
// timeout elapses (or ctx is canceled) while a watched file is still open.
//
// The process is identified by its pid and, when cfg.Inspector is an
// Identifier, by the start time seen on the first check, so a pid reused by
// an unrelated process counts as the original having exited.
//
// Introspection failures never abort the wait. A descendant or open-file
// listing that fails contributes nothing to the current check, and a
// top-level process that has exited or become inaccessible counts as having
// released everything. On platforms where access denial is transient this
// may report success while a file is still held.
//
// WaitForRelease panics if cfg.Interval or cfg.Timeout is negative or if
// cfg.Interval exceeds cfg.Timeout.
func WaitForRelease(ctx context.Context, cfg WaitConfig, pid int, paths []string) bool {
	cfg.validate()

	r := &releaseCheck{
		pid:       pid,
		watch:     WatchSet(paths),
		recursive: cfg.Recursive,
		insp:      cfg.Inspector,
		log:       logging.OrDefault(cfg.Logger),
	}
	if r.insp == nil {
		r.insp = NewInspector()
	}
	if r.watch.Len() == 0 {
		return true
	}

	pollCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	// The condition inspects with ctx rather than pollCtx so that a check in
	// flight when the deadline passes is not cut short and misread as an
	// inaccessible process.
	err := wait.PollUntilContextCancel(pollCtx, cfg.Interval, true,
		func(context.Context) (bool, error) {
			return len(r.held(ctx)) == 0, nil
		})
	if err == nil {
		return true
	}
	if ctx.Err() != nil {
		r.log.Debug("wait for file release canceled", "pid", pid, "error", ctx.Err())
		return false
	}

	// The last poll ran before the deadline; decide on a check made at or
	// after it.
	held := r.held(ctx)
	if len(held) == 0 {
		return true
	}
	r.log.Debug("timeout waiting for file release", "pid", pid, "files", held)
	return false
}

// releaseCheck evaluates which watched files are currently open.
type releaseCheck struct {
	pid       int
	watch     sets.Set[string]
	recursive bool
	insp      Inspector
	log       *slog.Logger

	// started is the start time of pid seen on the first check, when the
	// Inspector is an Identifier.
	started int64
	pinned  bool
}

// held returns the sorted watched files that are open by the process tree.
// It returns nil when the top-level process is gone or inaccessible.
func (r *releaseCheck) held(ctx context.Context) []string {
	running, err := r.insp.IsRunning(ctx, r.pid)
	if err != nil {
		r.log.Debug("process inaccessible, treating files as released", "pid", r.pid, "error", err)
		return nil
	}
	if !running {
		r.log.Debug("process not running", "pid", r.pid)
		return nil
	}
	if !r.sameProcess(ctx) {
		return nil
	}

	pids := []int{r.pid}
	if r.recursive {
		children, err := r.insp.Descendants(ctx, r.pid)
		if err != nil {
			r.log.Debug("list descendants failed", "pid", r.pid, "error", err)
		} else {
			pids = append(pids, children...)
		}
	}

	open := sets.New[string]()
	for _, p := range pids {
		files, err := r.insp.OpenFiles(ctx, p)
		if err != nil {
			r.log.Debug("list open files failed", "pid", p, "error", err)
			continue
		}
		for _, f := range files {
			open.Insert(normalizeOpen(f))
		}
	}
	return sets.List(open.Intersection(r.watch))
}

// sameProcess reports whether pid still names the process seen on the first
// check. It is always true for an Inspector that is not an Identifier.
func (r *releaseCheck) sameProcess(ctx context.Context) bool {
	id, ok := r.insp.(Identifier)
	if !ok {
		return true
	}
	started, err := id.StartTime(ctx, r.pid)
	if err != nil {
		r.log.Debug("process inaccessible, treating files as released", "pid", r.pid, "error", err)
		return false
	}
	if !r.pinned {
		r.started, r.pinned = started, true
		return true
	}
	if started != r.started {
		r.log.Debug("pid reused, treating files as released", "pid", r.pid)
		return false
	}
	return true
}
