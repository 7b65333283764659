package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/giantswarm/ffharness"
)

func runEnv(_ context.Context, args []string, stdout, stderr io.Writer) (int, error) {
	fs := newFlagSet("env", stderr)
	var common commonFlags
	common.register(fs)
	targetDir := fs.StringP("target-dir", "t", "", "`directory` containing the browser build")
	logPrefix := fs.StringP("log-prefix", "l", "", "sanitizer log_path `prefix`")
	set := fs.StringArray("set", nil, "set `KEY=VALUE` after defaults (repeatable)")
	unset := fs.StringArray("unset", nil, "remove `KEY` from the environment (repeatable)")
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
	prefix := firstNonEmpty(*logPrefix, cfg.SanitizerLog)
	if prefix == "" {
		return 0, usageErrorf("a sanitizer log prefix is required (--log-prefix or sanitizer_log)")
	}

	opts := []ffharness.EnvOption{ffharness.WithEnvOverrides(cfg.Env)}
	for _, kv := range *set {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return 0, usageErrorf("--set %q: want KEY=VALUE", kv)
		}
		opts = append(opts, ffharness.WithEnv(name, value))
	}
	for _, name := range *unset {
		if name == "" {
			return 0, usageErrorf("--unset: empty variable name")
		}
		opts = append(opts, ffharness.WithoutEnv(name))
	}

	env, err := ffharness.PrepareEnvironment(firstNonEmpty(*targetDir, cfg.TargetDir), prefix, opts...)
	if err != nil {
		return 0, err
	}
	for _, line := range ffharness.EnvironList(env) {
		fmt.Fprintln(stdout, line)
	}
	return ExitSuccess, nil
}
