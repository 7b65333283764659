package process

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"fortio.org/safecast"
	"github.com/shirou/gopsutil/v3/process"
)

// Inspector reports the state of live processes. Implementations may fail
// at any time because processes exit or deny access; callers treat every
// error as transient.
type Inspector interface {
	// IsRunning reports whether pid refers to a running process. A process
	// that does not exist is reported as (false, nil).
	IsRunning(ctx context.Context, pid int) (bool, error)

	// Descendants returns the pids of all children of pid, transitively.
	Descendants(ctx context.Context, pid int) ([]int, error)

	// OpenFiles returns the paths of the regular files pid holds open.
	OpenFiles(ctx context.Context, pid int) ([]string, error)
}

// Identifier is implemented by an Inspector that can tell apart two
// processes that used the same pid. WaitForRelease pins the start time seen
// on its first check and treats a different one as the process having
// exited.
type Identifier interface {
	StartTime(ctx context.Context, pid int) (int64, error)
}

// Compile-time interface satisfaction checks.
var (
	_ Inspector  = SystemInspector{}
	_ Identifier = SystemInspector{}
)

// NewInspector returns the Inspector for the running operating system.
//
//nolint:ireturn // callers only need the capability interface
func NewInspector() Inspector {
	return SystemInspector{}
}

// SystemInspector implements Inspector on top of gopsutil. Open file
// enumeration requires permission to inspect the target process.
type SystemInspector struct{}

// IsRunning implements Inspector.
func (SystemInspector) IsRunning(ctx context.Context, pid int) (bool, error) {
	p, err := lookup(ctx, pid)
	if errors.Is(err, process.ErrorProcessNotRunning) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return p.IsRunningWithContext(ctx)
}

// Descendants implements Inspector. The tree is built from the parent pid
// of every process in the table and walked breadth first from pid.
// Processes that exit while the table is read are left out.
func (SystemInspector) Descendants(ctx context.Context, pid int) ([]int, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	children := make(map[int][]int, len(procs))
	for _, p := range procs {
		ppid, err := p.PpidWithContext(ctx)
		if err != nil {
			continue
		}
		children[int(ppid)] = append(children[int(ppid)], int(p.Pid))
	}

	var pids []int
	seen := map[int]struct{}{pid: {}}
	queue := []int{pid}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		for _, c := range children[parent] {
			if _, ok := seen[c]; ok {
				continue
			}
			seen[c] = struct{}{}
			pids = append(pids, c)
			queue = append(queue, c)
		}
	}
	return pids, nil
}

// StartTime implements Identifier. The value is the creation time in
// milliseconds since the epoch.
func (SystemInspector) StartTime(ctx context.Context, pid int) (int64, error) {
	p, err := lookup(ctx, pid)
	if err != nil {
		return 0, err
	}
	created, err := p.CreateTimeWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("create time of %d: %w", pid, err)
	}
	return created, nil
}

// OpenFiles implements Inspector. Descriptors that are not files on disk
// (sockets, pipes, anonymous inodes) are skipped.
func (SystemInspector) OpenFiles(ctx context.Context, pid int) ([]string, error) {
	p, err := lookup(ctx, pid)
	if err != nil {
		return nil, err
	}
	stats, err := p.OpenFilesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list open files of %d: %w", pid, err)
	}
	paths := make([]string, 0, len(stats))
	for _, st := range stats {
		if filepath.IsAbs(st.Path) {
			paths = append(paths, st.Path)
		}
	}
	return paths, nil
}

func lookup(ctx context.Context, pid int) (*process.Process, error) {
	pid32, err := safecast.Conv[int32](pid)
	if err != nil {
		return nil, fmt.Errorf("pid %d: %w", pid, err)
	}
	return process.NewProcessWithContext(ctx, pid32)
}
