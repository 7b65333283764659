package main

import (
	"context"
	"fmt"
	"io"

	"github.com/giantswarm/ffharness"
)

func runCheckPrefs(_ context.Context, args []string, stdout, stderr io.Writer) (int, error) {
	fs := newFlagSet("check-prefs", stderr)
	var common commonFlags
	common.register(fs)
	if help, err := parseFlags(fs, args); help || err != nil {
		return ExitSuccess, err
	}
	if fs.NArg() != 2 {
		return 0, usageErrorf("want PROFILE_PREFS INPUT_PREFS, got %d arguments", fs.NArg())
	}
	if _, err := common.setup(stderr); err != nil {
		return 0, err
	}

	ok, err := ffharness.CheckPrefs(fs.Arg(0), fs.Arg(1))
	if err != nil {
		return 0, err
	}
	if !ok {
		fmt.Fprintln(stderr, "ffharness check-prefs: prefs missing from profile (run with -v for names)")
		return ExitFailure, nil
	}
	fmt.Fprintln(stdout, "all prefs present")
	return ExitSuccess, nil
}
