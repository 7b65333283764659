package main

import (
	"errors"
	"os"

	"github.com/giantswarm/ffharness"
	"github.com/giantswarm/ffharness/internal/config"
)

// Exit codes for the ffharness CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Command succeeded
	ExitFailure = 1 // Files still open, prefs missing, or unexpected error
	ExitUsage   = 2 // Invalid flags, arguments or config
	ExitIO      = 3 // Required file or directory missing or unusable
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Usage/config errors (exit 2)
	if errors.Is(err, errUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrConfigInvalid) ||
		errors.Is(err, config.ErrConfigTooLarge) {
		return ExitUsage
	}

	// I/O and input errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ffharness.ErrExtensionID) ||
		errors.Is(err, ffharness.ErrUnknownExtension) ||
		errors.Is(err, ffharness.ErrDuplicateExtension) {
		return ExitIO
	}

	return ExitFailure
}
