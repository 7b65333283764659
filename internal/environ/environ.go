package environ

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/giantswarm/ffharness/internal/logging"
	"github.com/giantswarm/ffharness/internal/sanitizer"
)

// Config holds the inputs of Build besides the base environment.
type Config struct {
	// TargetDir is the directory containing the browser binary. It is
	// searched for llvm-symbolizer.
	TargetDir string

	// LogPrefix is the sanitizer log prefix, forced into log_path.
	LogPrefix string

	// Overrides is applied last. A nil value deletes the variable, any other
	// value sets it.
	Overrides map[string]*string

	// Logger receives resolution warnings. Defaults to the package logger.
	Logger *slog.Logger
}

// Build returns the environment for launching the browser. base is copied,
// never modified. The only error is a sanitizer option string that names a
// missing suppressions file.
func Build(base map[string]string, cfg Config) (map[string]string, error) {
	log := logging.OrDefault(cfg.Logger)

	env := maps.Clone(base)
	if env == nil {
		env = make(map[string]string)
	}

	for _, d := range browserDefaults {
		if _, ok := env[d.name]; ok && !d.forced {
			continue
		}
		env[d.name] = d.value
	}

	for _, fam := range sanitizerFamilies {
		opts := sanitizer.New(log)
		if err := opts.LoadEnv(env, fam.envVar); err != nil {
			return nil, fmt.Errorf("configure %s: %w", fam.envVar, err)
		}
		for _, o := range fam.defaults {
			opts.Add(o.name, o.value, o.forced)
		}
		if fam.logPath {
			opts.Add(logPathOption, quote(cfg.LogPrefix), true)
		}
		env[fam.envVar] = opts.String()
	}

	resolveSymbolizer(env, cfg.TargetDir, runtime.GOOS, log)

	for name, value := range cfg.Overrides {
		if value == nil {
			delete(env, name)
			continue
		}
		env[name] = *value
	}

	return env, nil
}

// quote wraps a log prefix in single quotes so the sanitizer runtime reads
// it as one value.
func quote(s string) string {
	return "'" + s + "'"
}

// symbolizerName returns the llvm-symbolizer executable name for goos.
func symbolizerName(goos string) string {
	if goos == "windows" {
		return "llvm-symbolizer.exe"
	}
	return "llvm-symbolizer"
}

// resolveSymbolizer points ASAN_SYMBOLIZER_PATH at the llvm-symbolizer
// shipped next to the target binary when the variable is unset, and warns
// when a user-provided path does not exist.
func resolveSymbolizer(env map[string]string, targetDir, goos string, log *slog.Logger) {
	if path, ok := env[ASanSymbolizerPath]; ok {
		if !isFile(path) {
			log.Warn("invalid symbolizer path", "var", ASanSymbolizerPath, "path", path)
		}
		return
	}
	bin := filepath.Join(targetDir, symbolizerName(goos))
	if isFile(bin) {
		env[ASanSymbolizerPath] = bin
		return
	}
	if goos != "windows" {
		log.Warn("llvm-symbolizer should be next to the target binary", "path", bin)
	}
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// FromList converts KEY=VALUE entries, as returned by os.Environ, to a map.
// Entries without a name are dropped.
func FromList(list []string) map[string]string {
	env := make(map[string]string, len(list))
	for _, kv := range list {
		name, value, _ := strings.Cut(kv, "=")
		if name == "" {
			continue
		}
		env[name] = value
	}
	return env
}

// ToList converts env to sorted KEY=VALUE entries, the form exec.Cmd.Env
// expects.
func ToList(env map[string]string) []string {
	list := make([]string, 0, len(env))
	for _, name := range slices.Sorted(maps.Keys(env)) {
		list = append(list, name+"="+env[name])
	}
	return list
}
