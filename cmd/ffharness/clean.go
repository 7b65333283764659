package main

import (
	"context"
	"fmt"
	"io"

	"github.com/giantswarm/ffharness"
)

func runClean(_ context.Context, args []string, stdout, stderr io.Writer) (int, error) {
	fs := newFlagSet("clean", stderr)
	var common commonFlags
	common.register(fs)
	baseDir := fs.String("base-dir", "", "`directory` to clean (default system temp dir)")
	if help, err := parseFlags(fs, args); help || err != nil {
		return ExitSuccess, err
	}
	if fs.NArg() > 0 {
		return 0, usageErrorf("unexpected arguments: %v", fs.Args())
	}

	cfg, err := common.setup(stderr)
	if err != nil {
		return 0, err
	}

	removed, err := ffharness.RemoveStaleProfiles(firstNonEmpty(*baseDir, cfg.Profile.BaseDir))
	for _, dir := range removed {
		fmt.Fprintln(stdout, dir)
	}
	if err != nil {
		return 0, err
	}
	return ExitSuccess, nil
}
