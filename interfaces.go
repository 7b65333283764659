package ffharness

import (
	"github.com/giantswarm/ffharness/internal/process"
	"github.com/giantswarm/ffharness/internal/sanitizer"
)

// Inspector reports the state of live processes for WaitOnFiles. The
// default implementation uses the operating system's process table;
// WithInspector substitutes another.
//
// Implementations may fail at any time because processes exit or deny
// access. WaitOnFiles treats every error as transient:
//
//   - IsRunning: an error counts as the process having exited.
//   - Descendants: an error means no descendants for that check.
//   - OpenFiles: an error contributes no open files for that process.
//
// An Inspector that also implements Identifier lets WaitOnFiles detect a
// pid reused by an unrelated process.
type Inspector = process.Inspector

// Identifier reports the start time of a process. WaitOnFiles pins the value
// seen on its first check; a later mismatch, or an error, counts as the
// process having exited.
type Identifier = process.Identifier

// SanitizerOptions is a set of sanitizer runtime options, as found in
// ASAN_OPTIONS, LSAN_OPTIONS and UBSAN_OPTIONS. Options are parsed from and
// serialized to the colon separated name=value form. A colon inside a
// value is kept when it is preceded by a backslash or followed by a
// backslash, slash or pipe, so Windows paths and URLs survive a round trip.
//
// A SanitizerOptions is not safe for concurrent use.
type SanitizerOptions = sanitizer.Options

// Profile is a browser profile directory owned by the caller.
type Profile interface {
	// Path returns the profile directory.
	Path() string

	// Remove deletes the profile directory and gives up ownership. It is
	// safe to call more than once.
	Remove() error

	// Release gives up ownership and keeps the directory. A released
	// profile is deleted by the next RemoveStaleProfiles.
	Release()
}
