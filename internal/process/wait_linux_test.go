package process

import (
	"context"
	"os"
	"os/exec"
	"slices"
	"syscall"
	"testing"
	"time"
)

// startHolder starts a shell whose background child opens path on fd 3 and
// sleeps. It returns the pids of the shell and of the child once the child
// holds the file.
func startHolder(t *testing.T, path string) (shell, holder int) {
	t.Helper()

	cmd := exec.Command("/bin/sh", "-c", `(exec 3<"$1"; exec sleep 30) & wait`, "sh", path)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		t.Fatalf("start shell: %v", err)
	}
	t.Cleanup(func() {
		_ = syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		_ = cmd.Wait()
	})

	watch := normalizeOpen(path)
	insp := SystemInspector{}
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		children, _ := insp.Descendants(context.Background(), cmd.Process.Pid)
		for _, c := range children {
			files, _ := insp.OpenFiles(context.Background(), c)
			for _, f := range files {
				if normalizeOpen(f) == watch {
					return cmd.Process.Pid, c
				}
			}
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("child never opened the file")
	return 0, 0
}

// Not parallel: the environment is modified.
func TestSystemInspector_DescendantHoldsFile(t *testing.T) {
	files := createFiles(t, "held.log")
	shell, holder := startHolder(t, files[0])

	// The process table is read from /proc; no helper binary is needed.
	t.Setenv("PATH", t.TempDir())

	insp := SystemInspector{}
	children, err := insp.Descendants(context.Background(), os.Getpid())
	if err != nil {
		t.Fatalf("Descendants() error = %v", err)
	}
	for _, want := range []int{shell, holder} {
		if !slices.Contains(children, want) {
			t.Errorf("Descendants(self) = %v, missing %d", children, want)
		}
	}

	tests := map[string]struct {
		pid       int
		recursive bool
		want      bool
	}{
		"grandchild holds file": {pid: os.Getpid(), recursive: true, want: false},
		"child holds file":      {pid: shell, recursive: true, want: false},
		"non-recursive":         {pid: shell, recursive: false, want: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := WaitForRelease(context.Background(), WaitConfig{
				Interval:  50 * time.Millisecond,
				Timeout:   200 * time.Millisecond,
				Recursive: tc.recursive,
				Logger:    quietLogger(),
			}, tc.pid, files)
			if got != tc.want {
				t.Errorf("WaitForRelease() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSystemInspector_StartTime(t *testing.T) {
	t.Parallel()

	insp := SystemInspector{}
	first, err := insp.StartTime(context.Background(), os.Getpid())
	if err != nil {
		t.Fatalf("StartTime() error = %v", err)
	}
	if first <= 0 {
		t.Errorf("StartTime() = %d, want a positive value", first)
	}
	again, err := insp.StartTime(context.Background(), os.Getpid())
	if err != nil {
		t.Fatalf("StartTime() error = %v", err)
	}
	if again != first {
		t.Errorf("StartTime() changed from %d to %d", first, again)
	}

	if _, err := insp.StartTime(context.Background(), 1<<30); err == nil {
		t.Error("expected an error for a pid that does not exist")
	}
}
