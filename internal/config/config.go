package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/giantswarm/ffharness/internal/sentinel"
	"github.com/goccy/go-yaml"
)

const (
	// ErrConfigNotFound is returned when the configuration file does not exist.
	ErrConfigNotFound = sentinel.Missing("config file not found")

	// ErrConfigParse is returned when the configuration file is not valid YAML
	// or contains unknown fields.
	ErrConfigParse = sentinel.Error("failed to parse config")

	// ErrConfigInvalid is returned when a configuration value is out of range.
	ErrConfigInvalid = sentinel.Error("invalid config")

	// ErrConfigTooLarge is returned for configuration files over MaxFileSize.
	ErrConfigTooLarge = sentinel.Error("config file too large")
)

// MaxFileSize limits the size of a configuration file.
const MaxFileSize = 1 << 20

// Config is the harness configuration file.
type Config struct {
	TargetDir    string             `yaml:"target_dir"`    // Directory holding the browser build
	SanitizerLog string             `yaml:"sanitizer_log"` // Sanitizer log_path prefix
	Env          map[string]*string `yaml:"env"`           // Overrides; null removes the variable
	Wait         WaitConfig         `yaml:"wait"`
	Profile      ProfileConfig      `yaml:"profile"`
}

// WaitConfig configures waiting for file release.
type WaitConfig struct {
	PollInterval *Duration `yaml:"poll_interval"`
	Timeout      *Duration `yaml:"timeout"`
	Recursive    *bool     `yaml:"recursive"`
}

// ProfileConfig configures profile creation.
type ProfileConfig struct {
	BaseDir    string   `yaml:"base_dir"`
	Template   string   `yaml:"template"`
	Prefs      string   `yaml:"prefs"`
	Extensions []string `yaml:"extensions"`
}

// Duration is a time.Duration written in YAML as a Go duration string such
// as "100ms" or "1m30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.BytesUnmarshaler.
func (d *Duration) UnmarshalYAML(b []byte) error {
	var s string
	if err := yaml.Unmarshal(b, &s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// MarshalYAML implements yaml.BytesMarshaler.
func (d Duration) MarshalYAML() ([]byte, error) {
	return yaml.Marshal(time.Duration(d).String())
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Load reads and validates the configuration file at path.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	if info.Size() > MaxFileSize {
		return nil, fmt.Errorf("%w: %s (%d bytes, max %d)", ErrConfigTooLarge, path, info.Size(), MaxFileSize)
	}

	data, err := os.ReadFile(path) //nolint:gosec // G304: config path is user-provided
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates configuration data. Unknown fields are
// rejected. Empty input yields an empty configuration.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if len(data) > 0 {
		if err := yaml.UnmarshalWithOptions(data, &cfg, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges. Unset durations are not checked.
func (c *Config) Validate() error {
	w := c.Wait
	if w.PollInterval != nil && *w.PollInterval < 0 {
		return fmt.Errorf("%w: wait.poll_interval must not be negative, got %v", ErrConfigInvalid, w.PollInterval.Std())
	}
	if w.Timeout != nil && *w.Timeout < 0 {
		return fmt.Errorf("%w: wait.timeout must not be negative, got %v", ErrConfigInvalid, w.Timeout.Std())
	}
	if w.PollInterval != nil && w.Timeout != nil && *w.PollInterval > *w.Timeout {
		return fmt.Errorf("%w: wait.poll_interval %v exceeds wait.timeout %v",
			ErrConfigInvalid, w.PollInterval.Std(), w.Timeout.Std())
	}
	for name := range c.Env {
		if name == "" {
			return fmt.Errorf("%w: env contains an empty variable name", ErrConfigInvalid)
		}
	}
	return nil
}
