package process

import (
	"path/filepath"
	"runtime"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"
)

// WatchSet normalizes paths for membership tests against open files. Paths
// that do not exist are dropped: a file that was never created cannot be
// held open.
func WatchSet(paths []string) sets.Set[string] {
	watch := sets.New[string]()
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		resolved, err := filepath.EvalSymlinks(abs)
		if err != nil {
			continue
		}
		watch.Insert(normcase(resolved))
	}
	return watch
}

// normalizeOpen normalizes a path reported as open. The file may already be
// gone, in which case the cleaned path is used as is.
func normalizeOpen(path string) string {
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		resolved = filepath.Clean(path)
	}
	return normcase(resolved)
}

// normcase folds case on case-insensitive platforms.
func normcase(path string) string {
	if runtime.GOOS == "windows" {
		return strings.ToLower(path)
	}
	return path
}
