package ffharness

import "time"

// WaitConfigSnapshot holds a copy of waitConfig fields for test assertions.
// Exported only via export_test.go so that the _test package can verify
// option closures actually mutate the config without accessing internals.
type WaitConfigSnapshot struct {
	Interval     time.Duration
	Timeout      time.Duration
	Recursive    bool
	HasInspector bool
	HasLogger    bool
}

// ApplyWaitOptionsForTesting creates a default waitConfig, applies the given
// options, and returns a snapshot of the result.
func ApplyWaitOptionsForTesting(opts ...WaitOption) WaitConfigSnapshot {
	cfg := defaultWaitConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return WaitConfigSnapshot{
		Interval:     cfg.Interval,
		Timeout:      cfg.Timeout,
		Recursive:    cfg.Recursive,
		HasInspector: cfg.Inspector != nil,
		HasLogger:    cfg.Logger != nil,
	}
}

// ProfileConfigSnapshot holds a copy of profileConfig fields.
type ProfileConfigSnapshot struct {
	BaseDir    string
	Template   string
	Prefs      string
	Extensions []string
}

// ApplyProfileOptionsForTesting applies opts to a default profileConfig.
func ApplyProfileOptionsForTesting(opts ...ProfileOption) ProfileConfigSnapshot {
	cfg := defaultProfileConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return ProfileConfigSnapshot{
		BaseDir:    cfg.BaseDir,
		Template:   cfg.Template,
		Prefs:      cfg.Prefs,
		Extensions: cfg.Extensions,
	}
}

// ApplyEnvOptionsForTesting applies opts to a default envConfig and returns
// the resulting overrides.
func ApplyEnvOptionsForTesting(opts ...EnvOption) map[string]*string {
	cfg := defaultEnvConfig("", "")
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg.Overrides
}
