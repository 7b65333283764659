package ffharness

import (
	"context"
	"os"

	"github.com/giantswarm/ffharness/internal/environ"
	"github.com/giantswarm/ffharness/internal/fileutil"
	"github.com/giantswarm/ffharness/internal/process"
	"github.com/giantswarm/ffharness/internal/profile"
	"github.com/giantswarm/ffharness/internal/sanitizer"
)

// Compile-time interface satisfaction checks.
var (
	_ Profile   = (*profile.Profile)(nil)
	_ Inspector = process.SystemInspector{}
)

// PrepareEnvironment returns the environment for a browser under test,
// starting from the environment of the current process (see WithBaseEnv).
//
// The result sets the browser's crash and sandbox variables, fills in
// ASAN_OPTIONS, LSAN_OPTIONS and UBSAN_OPTIONS with harness defaults
// without replacing options the caller already set, and points the
// sanitizers' log_path at logPrefix. When ASAN_SYMBOLIZER_PATH is unset and
// targetDir contains llvm-symbolizer, it is used. Overrides from
// WithEnv, WithoutEnv and WithEnvOverrides are applied last.
//
// Returns ErrSuppressionsNotFound if an inherited sanitizer option names a
// suppressions file that does not exist.
//
// Panics if an inherited sanitizer options variable contains whitespace,
// which the sanitizer runtimes cannot parse.
func PrepareEnvironment(targetDir, logPrefix string, opts ...EnvOption) (map[string]string, error) {
	cfg := defaultEnvConfig(targetDir, logPrefix)
	for _, opt := range opts {
		opt(&cfg)
	}
	base := cfg.base
	if !cfg.hasBase {
		base = os.Environ()
	}
	return environ.Build(environ.FromList(base), cfg.Config)
}

// EnvironList converts an environment map into sorted KEY=VALUE entries,
// the form expected by exec.Cmd.Env.
func EnvironList(env map[string]string) []string {
	return environ.ToList(env)
}

// WaitOnFiles waits until neither the process pid nor, unless disabled with
// WithRecursive, any of its descendants has one of files open. It returns
// true once the files are released and false when the timeout elapses or
// ctx is canceled first.
//
// Paths are compared after resolving symbolic links; files that do not exist
// are not watched, and with nothing left to watch WaitOnFiles returns true
// immediately. A process that exits, or that can no longer be inspected,
// counts as having released everything.
//
// Panics if the poll interval exceeds the timeout.
func WaitOnFiles(ctx context.Context, pid int, files []string, opts ...WaitOption) bool {
	cfg := defaultWaitConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return process.WaitForRelease(ctx, cfg.WaitConfig, pid, files)
}

// NewSanitizerOptions returns an empty SanitizerOptions that logs through
// the package logger.
func NewSanitizerOptions() *SanitizerOptions {
	return sanitizer.New(nil)
}

// CreateProfile creates a new browser profile directory. The caller owns it
// until Remove or Release is called on the result.
//
// Returns ErrTemplateNotFound, ErrPrefsNotFound, ErrExtensionID,
// ErrUnknownExtension or ErrDuplicateExtension when an input is unusable. On
// any error nothing is left behind.
//
//nolint:ireturn // Returns Profile interface by design for testability (mockable).
func CreateProfile(ctx context.Context, opts ...ProfileOption) (Profile, error) {
	cfg := defaultProfileConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	p, err := profile.Create(ctx, cfg.Config)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// RemoveStaleProfiles deletes profiles in baseDir (os.TempDir() when empty)
// that are no longer owned, such as those left by a harness that crashed.
// It returns the removed directories.
func RemoveStaleProfiles(baseDir string) ([]string, error) {
	return profile.RemoveStale(baseDir, nil)
}

// CheckPrefs reports whether every pref set in inputPrefs is present in
// profPrefs, the prefs.js the browser wrote into its profile. Only pref
// names are compared. Returns ErrPrefsNotFound if either file is missing.
func CheckPrefs(profPrefs, inputPrefs string) (bool, error) {
	return profile.CheckPrefs(profPrefs, inputPrefs)
}

// RemoveTree deletes path and everything below it, granting write
// permission and retrying when the first attempt is denied.
func RemoveTree(path string) error {
	return fileutil.RemoveTree(path)
}
