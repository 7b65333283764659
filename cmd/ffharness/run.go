package main

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
)

// command is a CLI subcommand. run returns the exit code for a completed
// command; a non-nil error is reported and mapped with exitCodeFor.
type command struct {
	name    string
	summary string
	run     func(ctx context.Context, args []string, stdout, stderr io.Writer) (int, error)
}

var commands = []command{
	{name: "env", summary: "print the browser environment as KEY=VALUE lines", run: runEnv},
	{name: "wait", summary: "wait until a process tree releases files", run: runWait},
	{name: "profile", summary: "create a browser profile and print its path", run: runProfile},
	{name: "check-prefs", summary: "check that a profile's prefs.js contains the requested prefs", run: runCheckPrefs},
	{name: "clean", summary: "remove profiles left behind by exited harnesses", run: runClean},
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return ExitUsage
	}
	switch args[0] {
	case "-h", "--help", "help":
		printUsage(stdout)
		return ExitSuccess
	case "version", "--version":
		fmt.Fprintln(stdout, "ffharness", Version)
		return ExitSuccess
	}

	i := slices.IndexFunc(commands, func(c command) bool { return c.name == args[0] })
	if i < 0 {
		fmt.Fprintf(stderr, "ffharness: unknown command %q\n\n", args[0])
		printUsage(stderr)
		return ExitUsage
	}

	code, err := commands[i].run(ctx, args[1:], stdout, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "ffharness %s: %v\n", args[0], err)
		return exitCodeFor(err)
	}
	return code
}

func printUsage(w io.Writer) {
	var b strings.Builder
	b.WriteString("Usage: ffharness <command> [flags] [args]\n\nCommands:\n")
	for _, c := range commands {
		fmt.Fprintf(&b, "  %-12s %s\n", c.name, c.summary)
	}
	b.WriteString("\nRun 'ffharness <command> --help' for command flags.\n")
	_, _ = io.WriteString(w, b.String())
}
