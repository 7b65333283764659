package ffharness

import (
	"log/slog"

	"github.com/giantswarm/ffharness/internal/logging"
)

// SetLogger replaces the package-level logger used by ffharness.
// The provided logger should already have any desired attributes; ffharness
// will not add additional attributes.
//
// If l is nil, the logger resets to the default: slog.Default() with a
// "component" attribute, re-derived on the next use and then cached. Call
// SetLogger(nil) after slog.SetDefault() to pick up changes.
//
// SetLogger is safe to call concurrently with other ffharness operations,
// but a call in flight may still log through the previous logger. Call it
// before starting goroutines that use the library for a strict
// happens-before guarantee.
//
// Example:
//
//	ffharness.SetLogger(myLogger.With("component", "ffharness"))
func SetLogger(l *slog.Logger) {
	logging.SetLogger(l)
}
