package profile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/giantswarm/ffharness/internal/fileutil"
	"github.com/giantswarm/ffharness/internal/logging"
	"github.com/giantswarm/ffharness/internal/sentinel"
	"github.com/gofrs/flock"
)

const (
	// ErrTemplateNotFound is returned when the template profile is not a directory.
	ErrTemplateNotFound = sentinel.Missing("template profile not found")

	// ErrPrefsNotFound is returned when a prefs.js file does not exist.
	ErrPrefsNotFound = sentinel.Missing("prefs file not found")
)

const (
	// DirPrefix prefixes the name of every profile directory.
	DirPrefix = "ffprof_"

	lockSuffix = ".lock"

	prefsFile        = "prefs.js"
	invalidPrefsFile = "Invalidprefs.js"
	timesFile        = "times.json"
	extensionsDir    = "extensions"
)

// Config describes the profile to create. All fields are optional.
type Config struct {
	BaseDir    string       // Parent directory (defaults to os.TempDir())
	Template   string       // Existing profile directory to start from
	Prefs      string       // prefs.js file to install
	Extensions []string     // .xpi files or unpacked extension directories
	Logger     *slog.Logger // Optional logger (defaults to the package logger)
}

// Profile is a profile directory owned by this process. The owner lock is
// held until Remove or Release is called.
type Profile struct {
	path string
	log  *slog.Logger

	mu      sync.Mutex
	lock    *flock.Flock
	removed bool
}

// Create builds a new profile directory under cfg.BaseDir. If any step fails
// the partially built directory is removed and the lock released.
func Create(ctx context.Context, cfg Config) (_ *Profile, retErr error) {
	log := logging.OrDefault(cfg.Logger)
	base := cfg.BaseDir
	if base == "" {
		base = os.TempDir()
	}

	dir, lock, err := reserve(base)
	if err != nil {
		return nil, err
	}
	p := &Profile{path: dir, log: log, lock: lock}
	defer func() {
		if retErr != nil {
			if err := p.Remove(); err != nil {
				log.Warn("failed to clean up profile", "path", dir, "error", err)
			}
		}
	}()
	log.Debug("profile directory", "path", dir)

	if cfg.Template != "" {
		if err := applyTemplate(cfg.Template, dir, log); err != nil {
			return nil, err
		}
	}
	if cfg.Prefs != "" {
		if err := installPrefs(cfg.Prefs, dir, log); err != nil {
			return nil, err
		}
	}
	if len(cfg.Extensions) > 0 {
		if err := installExtensions(ctx, filepath.Join(dir, extensionsDir), cfg.Extensions, log); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Path returns the profile directory.
func (p *Profile) Path() string {
	return p.path
}

// Remove deletes the profile directory and releases the owner lock. It also
// deletes a directory that was already released. It is safe to call more
// than once.
func (p *Profile) Remove() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.removed {
		return nil
	}
	// The directory goes first so that a concurrent RemoveStale can never
	// acquire the lock of a profile that still exists.
	if err := fileutil.RemoveTree(p.path); err != nil {
		return fmt.Errorf("remove profile: %w", err)
	}
	p.releaseLocked()
	if err := os.Remove(p.path + lockSuffix); err != nil && !errors.Is(err, fs.ErrNotExist) {
		p.log.Debug("failed to remove profile lock file", "path", p.path+lockSuffix, "error", err)
	}
	p.removed = true
	return nil
}

// Release gives up ownership without deleting the directory. A released
// profile is considered stale by RemoveStale.
func (p *Profile) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.releaseLocked()
}

func (p *Profile) releaseLocked() {
	if p.lock == nil {
		return
	}
	if err := p.lock.Close(); err != nil {
		p.log.Debug("failed to release profile lock", "path", p.lock.Path(), "error", err)
	}
	p.lock = nil
}

// reserve picks a fresh profile name, locks it and only then creates the
// directory, so no unlocked profile directory is ever visible to
// RemoveStale.
func reserve(base string) (string, *flock.Flock, error) {
	f, err := os.CreateTemp(base, DirPrefix+"*"+lockSuffix)
	if err != nil {
		return "", nil, fmt.Errorf("create profile lock: %w", err)
	}
	lockPath := f.Name()
	if err := f.Close(); err != nil {
		_ = os.Remove(lockPath)
		return "", nil, fmt.Errorf("create profile lock: %w", err)
	}

	fl := flock.New(lockPath)
	locked, err := fl.TryLock()
	if err == nil && !locked {
		err = errors.New("lock held by another process")
	}
	if err != nil {
		_ = os.Remove(lockPath)
		return "", nil, fmt.Errorf("lock profile %s: %w", lockPath, err)
	}

	dir := strings.TrimSuffix(lockPath, lockSuffix)
	if err := os.Mkdir(dir, 0o700); err != nil {
		_ = fl.Close()
		_ = os.Remove(lockPath)
		return "", nil, fmt.Errorf("create profile directory: %w", err)
	}
	return dir, fl, nil
}

func applyTemplate(template, dir string, log *slog.Logger) error {
	log.Debug("using profile template", "path", template)
	if !isDir(template) {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, template)
	}
	if err := fileutil.CopyDir(template, dir); err != nil {
		return fmt.Errorf("copy template: %w", err)
	}
	// A template may carry the browser's record of rejected prefs.
	if err := os.Remove(filepath.Join(dir, invalidPrefsFile)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", invalidPrefsFile, err)
	}
	return nil
}

func installPrefs(prefs, dir string, log *slog.Logger) error {
	log.Debug("using prefs.js", "path", prefs)
	if !isFile(prefs) {
		return fmt.Errorf("%w: %s", ErrPrefsNotFound, prefs)
	}
	if err := fileutil.CopyFile(prefs, filepath.Join(dir, prefsFile), 0o600); err != nil {
		return fmt.Errorf("install prefs: %w", err)
	}

	// The browser expects times.json alongside a prefs.js it did not write.
	times := filepath.Join(dir, timesFile)
	if isFile(times) {
		return nil
	}
	created := time.Now().Unix() * 1000
	if err := os.WriteFile(times, fmt.Appendf(nil, `{"created":%d}`, created), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", timesFile, err)
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
