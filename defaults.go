package ffharness

import (
	"time"

	"github.com/giantswarm/ffharness/internal/profile"
)

// Default configuration values. These constants are exported so callers can
// build custom values relative to them (e.g., 2 * DefaultWaitTimeout).
const (
	// DefaultPollInterval is the delay between checks in WaitOnFiles.
	DefaultPollInterval = 100 * time.Millisecond

	// DefaultWaitTimeout is how long WaitOnFiles waits for the watched files
	// to be released before giving up.
	DefaultWaitTimeout = 60 * time.Second

	// DefaultRecursive controls whether WaitOnFiles also inspects the
	// descendants of the target process. Browsers open most files from
	// content processes, so this is on by default.
	DefaultRecursive = true

	// ProfilePrefix prefixes the name of every profile directory created by
	// CreateProfile. RemoveStaleProfiles only considers entries with it.
	ProfilePrefix = profile.DirPrefix
)
