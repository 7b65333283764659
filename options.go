package ffharness

import (
	"fmt"
	"log/slog"
	"time"
)

// requireNonNegative panics if d < 0 with a descriptive message.
func requireNonNegative(name string, d time.Duration) {
	if d < 0 {
		panic(fmt.Sprintf("ffharness: %s must not be negative, got %v", name, d))
	}
}

// requireNonEmpty panics if s is empty with a descriptive message.
func requireNonEmpty(name, s string) {
	if s == "" {
		panic(fmt.Sprintf("ffharness: %s must not be empty", name))
	}
}

// WaitOption configures a WaitOnFiles call.
//
// Several With* functions panic on invalid input (negative durations, nil
// values). Option values are typically constants, so an invalid value is a
// programmer error rather than a runtime condition, in the manner of
// [regexp.MustCompile].
type WaitOption func(*waitConfig)

// WithPollInterval sets the delay between checks. Zero polls continuously.
// The interval must not exceed the timeout; WaitOnFiles panics otherwise.
//
// Default: 100 milliseconds.
//
// Panics if d < 0.
func WithPollInterval(d time.Duration) WaitOption {
	requireNonNegative("poll interval", d)
	return func(c *waitConfig) {
		c.Interval = d
	}
}

// WithTimeout sets how long to wait for the files to be released. A zero
// timeout performs a single check.
//
// Default: 60 seconds.
//
// Panics if d < 0.
func WithTimeout(d time.Duration) WaitOption {
	requireNonNegative("timeout", d)
	return func(c *waitConfig) {
		c.Timeout = d
	}
}

// WithRecursive controls whether descendants of the process are inspected.
//
// Default: true.
func WithRecursive(recursive bool) WaitOption {
	return func(c *waitConfig) {
		c.Recursive = recursive
	}
}

// WithInspector replaces the process inspector. Tests use it to script
// process state.
//
// Panics if insp is nil.
func WithInspector(insp Inspector) WaitOption {
	if insp == nil {
		panic("ffharness: inspector must not be nil")
	}
	return func(c *waitConfig) {
		c.Inspector = insp
	}
}

// WithWaitLogger sets the logger for a single wait, overriding SetLogger.
//
// Panics if l is nil.
func WithWaitLogger(l *slog.Logger) WaitOption {
	if l == nil {
		panic("ffharness: logger must not be nil")
	}
	return func(c *waitConfig) {
		c.Logger = l
	}
}

// EnvOption configures a PrepareEnvironment call.
type EnvOption func(*envConfig)

// WithEnv sets name to value after all defaults are applied, replacing any
// inherited or default value.
//
// Panics if name is empty.
func WithEnv(name, value string) EnvOption {
	requireNonEmpty("environment variable name", name)
	return func(c *envConfig) {
		c.setOverride(name, &value)
	}
}

// WithoutEnv removes name from the prepared environment, including
// variables set by the defaults.
//
// Panics if name is empty.
func WithoutEnv(name string) EnvOption {
	requireNonEmpty("environment variable name", name)
	return func(c *envConfig) {
		c.setOverride(name, nil)
	}
}

// WithEnvOverrides applies a batch of overrides: a nil value removes the
// variable, any other value sets it. The map is copied.
//
// Panics if a name is empty.
func WithEnvOverrides(overrides map[string]*string) EnvOption {
	for name := range overrides {
		requireNonEmpty("environment variable name", name)
	}
	cp := make(map[string]*string, len(overrides))
	for name, v := range overrides {
		if v != nil {
			s := *v
			v = &s
		}
		cp[name] = v
	}
	return func(c *envConfig) {
		for name, v := range cp {
			c.setOverride(name, v)
		}
	}
}

// WithBaseEnv starts from env, a list of KEY=VALUE entries, instead of the
// environment of the current process.
func WithBaseEnv(env []string) EnvOption {
	base := append([]string(nil), env...)
	return func(c *envConfig) {
		c.base = base
		c.hasBase = true
	}
}

func (c *envConfig) setOverride(name string, v *string) {
	if c.Overrides == nil {
		c.Overrides = make(map[string]*string)
	}
	c.Overrides[name] = v
}

// ProfileOption configures a CreateProfile call.
type ProfileOption func(*profileConfig)

// WithBaseDir sets the directory the profile is created in.
// If not set, defaults to os.TempDir().
//
// Panics if dir is empty.
func WithBaseDir(dir string) ProfileOption {
	requireNonEmpty("profile base directory", dir)
	return func(c *profileConfig) {
		c.BaseDir = dir
	}
}

// WithTemplate copies an existing profile directory into the new profile.
// Panics if dir is empty.
func WithTemplate(dir string) ProfileOption {
	requireNonEmpty("template profile path", dir)
	return func(c *profileConfig) {
		c.Template = dir
	}
}

// WithPrefs installs path as the profile's prefs.js.
// Panics if path is empty.
func WithPrefs(path string) ProfileOption {
	requireNonEmpty("prefs path", path)
	return func(c *profileConfig) {
		c.Prefs = path
	}
}

// WithExtensions installs extensions, each an .xpi file or an unpacked
// extension directory. Repeated use appends.
//
// Panics if any path is empty.
func WithExtensions(paths ...string) ProfileOption {
	for _, p := range paths {
		requireNonEmpty("extension path", p)
	}
	paths = append([]string(nil), paths...)
	return func(c *profileConfig) {
		c.Extensions = append(c.Extensions, paths...)
	}
}
