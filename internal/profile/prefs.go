package profile

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/giantswarm/ffharness/internal/logging"
	"k8s.io/apimachinery/pkg/util/sets"
)

const prefLinePrefix = "user_pref("

// maxPrefLine bounds a single prefs.js line. String prefs can be large.
const maxPrefLine = 16 << 20

// CheckPrefs reports whether every pref set in inputPrefs also appears in
// profPrefs, the prefs.js the browser wrote back into its profile. Prefs are
// compared by name only, so values may differ. Input files that do not use
// the browser's own prefs.js formatting can give false positives.
func CheckPrefs(profPrefs, inputPrefs string) (bool, error) {
	input, err := readPrefNames(inputPrefs)
	if err != nil {
		return false, err
	}
	prof, err := readPrefNames(profPrefs)
	if err != nil {
		return false, err
	}

	missing := input.Difference(prof)
	if missing.Len() == 0 {
		return true, nil
	}
	names := sets.List(missing)
	for i, n := range names {
		names[i] = strings.TrimPrefix(n, prefLinePrefix)
	}
	logging.Logger().Debug("prefs not set", "prefs", strings.Join(names, ", "))
	return false, nil
}

// readPrefNames returns the user_pref( lines of path cut at the first comma.
func readPrefNames(path string) (sets.Set[string], error) {
	if !isFile(path) {
		return nil, fmt.Errorf("%w: %s", ErrPrefsNotFound, path)
	}
	f, err := os.Open(path) //nolint:gosec // G304: prefs paths come from harness configuration
	if err != nil {
		return nil, fmt.Errorf("open prefs: %w", err)
	}
	defer func() { _ = f.Close() }()

	names := sets.New[string]()
	sc := bufio.NewScanner(f)
	sc.Buffer(nil, maxPrefLine)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, prefLinePrefix) {
			continue
		}
		name, _, _ := strings.Cut(line, ",")
		names.Insert(name)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read prefs %s: %w", path, err)
	}
	return names, nil
}
