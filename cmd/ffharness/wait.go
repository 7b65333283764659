package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/giantswarm/ffharness"
)

func runWait(ctx context.Context, args []string, stdout, stderr io.Writer) (int, error) {
	fs := newFlagSet("wait", stderr)
	var common commonFlags
	common.register(fs)
	pid := fs.IntP("pid", "p", 0, "`pid` of the process to watch")
	interval := fs.Duration("poll-interval", ffharness.DefaultPollInterval, "delay between checks")
	timeout := fs.Duration("timeout", ffharness.DefaultWaitTimeout, "give up after this long")
	recursive := fs.Bool("recursive", ffharness.DefaultRecursive, "also inspect descendant processes")
	if help, err := parseFlags(fs, args); help || err != nil {
		return ExitSuccess, err
	}

	cfg, err := common.setup(stderr)
	if err != nil {
		return 0, err
	}
	if *pid <= 0 {
		return 0, usageErrorf("--pid must be a positive process id")
	}
	files := fs.Args()
	if len(files) == 0 {
		return 0, usageErrorf("no files to wait on")
	}

	if !fs.Changed("poll-interval") && cfg.Wait.PollInterval != nil {
		*interval = cfg.Wait.PollInterval.Std()
	}
	if !fs.Changed("timeout") && cfg.Wait.Timeout != nil {
		*timeout = cfg.Wait.Timeout.Std()
	}
	if !fs.Changed("recursive") && cfg.Wait.Recursive != nil {
		*recursive = *cfg.Wait.Recursive
	}
	if err := checkTiming(*interval, *timeout); err != nil {
		return 0, err
	}

	released := ffharness.WaitOnFiles(ctx, *pid, files,
		ffharness.WithPollInterval(*interval),
		ffharness.WithTimeout(*timeout),
		ffharness.WithRecursive(*recursive),
	)
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("wait interrupted: %w", err)
	}
	if !released {
		fmt.Fprintf(stderr, "ffharness wait: files still open after %v\n", *timeout)
		return ExitFailure, nil
	}
	fmt.Fprintln(stdout, "released")
	return ExitSuccess, nil
}

// checkTiming rejects values that WaitOnFiles would panic on.
func checkTiming(interval, timeout time.Duration) error {
	switch {
	case interval < 0:
		return usageErrorf("--poll-interval must not be negative, got %v", interval)
	case timeout < 0:
		return usageErrorf("--timeout must not be negative, got %v", timeout)
	case interval > timeout:
		return usageErrorf("--poll-interval %v exceeds --timeout %v", interval, timeout)
	}
	return nil
}
