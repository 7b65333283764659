package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/giantswarm/ffharness"
	"github.com/giantswarm/ffharness/internal/config"
	"github.com/giantswarm/ffharness/internal/sentinel"
	flag "github.com/spf13/pflag"
)

// errUsage marks errors caused by invalid command-line input.
const errUsage = sentinel.Error("usage error")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	verbose bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVarP(&c.config, "config", "c", "", "harness configuration `file` (YAML)")
	fs.BoolVarP(&c.verbose, "verbose", "v", false, "log debug messages")
}

// setup installs the logger and loads the configuration file, if any.
func (c *commonFlags) setup(stderr io.Writer) (*config.Config, error) {
	level := slog.LevelInfo
	if c.verbose {
		level = slog.LevelDebug
	}
	ffharness.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	if c.config == "" {
		return &config.Config{}, nil
	}
	return config.Load(c.config)
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SortFlags = false
	return fs
}

// parseFlags parses args into fs. It reports help as handled so the caller
// can exit successfully.
func parseFlags(fs *flag.FlagSet, args []string) (help bool, err error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return true, nil
		}
		return false, fmt.Errorf("%w: %w", errUsage, err)
	}
	return false, nil
}

// usageErrorf returns a formatted error that maps to ExitUsage.
func usageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errUsage, fmt.Sprintf(format, args...))
}

// firstNonEmpty returns the first of values that is not empty.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
