package main

import (
	"context"
	"fmt"
	"io"

	"github.com/giantswarm/ffharness"
)

func runProfile(ctx context.Context, args []string, stdout, stderr io.Writer) (int, error) {
	fs := newFlagSet("profile", stderr)
	var common commonFlags
	common.register(fs)
	baseDir := fs.String("base-dir", "", "create the profile in `directory` (default system temp dir)")
	template := fs.String("template", "", "copy an existing profile `directory`")
	prefs := fs.String("prefs", "", "install `file` as prefs.js")
	extensions := fs.StringArray("extension", nil, "install an .xpi `path` or unpacked extension directory (repeatable)")
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

	var opts []ffharness.ProfileOption
	if dir := firstNonEmpty(*baseDir, cfg.Profile.BaseDir); dir != "" {
		opts = append(opts, ffharness.WithBaseDir(dir))
	}
	if dir := firstNonEmpty(*template, cfg.Profile.Template); dir != "" {
		opts = append(opts, ffharness.WithTemplate(dir))
	}
	if file := firstNonEmpty(*prefs, cfg.Profile.Prefs); file != "" {
		opts = append(opts, ffharness.WithPrefs(file))
	}
	exts := *extensions
	if !fs.Changed("extension") {
		exts = cfg.Profile.Extensions
	}
	for _, e := range exts {
		if e == "" {
			return 0, usageErrorf("empty extension path")
		}
	}
	if len(exts) > 0 {
		opts = append(opts, ffharness.WithExtensions(exts...))
	}

	prof, err := ffharness.CreateProfile(ctx, opts...)
	if err != nil {
		return 0, err
	}
	// The directory outlives this process; the caller removes it, or clean
	// does once it is unowned.
	prof.Release()
	fmt.Fprintln(stdout, prof.Path())
	return ExitSuccess, nil
}
