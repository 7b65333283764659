package profile

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/giantswarm/ffharness/internal/fileutil"
	"github.com/giantswarm/ffharness/internal/logging"
	"github.com/gofrs/flock"
)

// RemoveStale deletes profile directories under baseDir whose owner lock is
// not held, meaning the harness that created them has exited. Profiles in
// use are left alone. It returns the removed directories; failures on
// individual profiles are joined into the returned error.
func RemoveStale(baseDir string, logger *slog.Logger) ([]string, error) {
	log := logging.OrDefault(logger)
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", baseDir, err)
	}

	var (
		removed []string
		errs    []error
	)
	for _, e := range entries {
		if !e.IsDir() || !strings.HasPrefix(e.Name(), DirPrefix) {
			continue
		}
		dir := filepath.Join(baseDir, e.Name())
		ok, err := removeIfUnlocked(dir, log)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			removed = append(removed, dir)
		}
	}
	return removed, errors.Join(errs...)
}

func removeIfUnlocked(dir string, log *slog.Logger) (bool, error) {
	lockPath := dir + lockSuffix
	fl := flock.New(lockPath)
	locked, err := fl.TryLock()
	if err != nil {
		return false, fmt.Errorf("lock %s: %w", lockPath, err)
	}
	if !locked {
		log.Debug("profile in use", "path", dir)
		return false, nil
	}
	defer func() {
		if err := fl.Close(); err != nil {
			log.Debug("failed to release profile lock", "path", lockPath, "error", err)
		}
		if err := os.Remove(lockPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Debug("failed to remove profile lock file", "path", lockPath, "error", err)
		}
	}()

	log.Debug("removing stale profile", "path", dir)
	if err := fileutil.RemoveTree(dir); err != nil {
		return false, err
	}
	return true, nil
}
