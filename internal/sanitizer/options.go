package sanitizer

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/giantswarm/ffharness/internal/logging"
	"github.com/giantswarm/ffharness/internal/sentinel"
)

// ErrSuppressionsNotFound is returned by Load when the suppressions option
// names a file that does not exist.
const ErrSuppressionsNotFound = sentinel.Missing("suppressions file does not exist")

const (
	// Delimiter separates options in a serialized option string.
	Delimiter = ':'

	// escape marks a delimiter that belongs to the preceding value.
	escape = '\\'

	// pathLookahead lists the characters that, when they follow a delimiter,
	// mark it as part of a path (C:\dir, C:/dir, file:|...).
	pathLookahead = `\|/`

	// suppressionsOption names the option holding a suppressions file path.
	suppressionsOption = "suppressions"
)

// Options accumulates the runtime options of one sanitizer family.
// Options is not safe for concurrent use.
type Options struct {
	opts map[string]string
	log  *slog.Logger
}

// New returns an empty Options. If logger is nil, the package logger is used.
func New(logger *slog.Logger) *Options {
	return &Options{
		opts: make(map[string]string),
		log:  logging.OrDefault(logger),
	}
}

// Add sets name to value. An existing value is kept unless overwrite is true.
func (o *Options) Add(name, value string, overwrite bool) {
	if _, ok := o.opts[name]; ok && !overwrite {
		return
	}
	o.opts[name] = value
}

// Get returns the value of name and whether it is set.
func (o *Options) Get(name string) (string, bool) {
	v, ok := o.opts[name]
	return v, ok
}

// Len returns the number of options.
func (o *Options) Len() int {
	return len(o.opts)
}

// LoadEnv loads the option string stored under key in env. A missing key is
// a no-op.
func (o *Options) LoadEnv(env map[string]string, key string) error {
	raw, ok := env[key]
	if !ok {
		return nil
	}
	return o.load(key, raw)
}

// Load parses raw and stores every well-formed option, replacing existing
// values. Malformed tokens are skipped with a warning. The suppressions value
// is made absolute and must name an existing file, otherwise an error
// matching ErrSuppressionsNotFound is returned.
//
// Load panics if raw contains whitespace: option syntax does not allow it, so
// such input is a caller bug.
func (o *Options) Load(raw string) error {
	return o.load("options", raw)
}

func (o *Options) load(source, raw string) error {
	if strings.ContainsFunc(raw, unicode.IsSpace) {
		panic(fmt.Sprintf("ffharness: %s must not contain whitespace, join options with ':'", source))
	}
	if raw == "" {
		return nil
	}
	for _, token := range Split(raw) {
		name, value, ok := parseToken(token)
		if !ok {
			o.log.Warn("malformed sanitizer option", "source", source, "option", token)
			continue
		}
		if name == suppressionsOption {
			path, err := resolveSuppressions(value)
			if err != nil {
				return fmt.Errorf("load %s: %w", source, err)
			}
			value = path
		}
		o.opts[name] = value
	}
	return nil
}

// String serializes the options as name=value pairs joined by the delimiter,
// sorted by name.
func (o *Options) String() string {
	var b strings.Builder
	for i, name := range slices.Sorted(maps.Keys(o.opts)) {
		if i > 0 {
			b.WriteByte(Delimiter)
		}
		b.WriteString(name)
		b.WriteByte('=')
		b.WriteString(o.opts[name])
	}
	return b.String()
}

// Split breaks an option string into tokens. A delimiter is skipped when it
// is escaped or followed by a path character.
func Split(raw string) []string {
	var tokens []string
	start := 0
	for i := range len(raw) {
		if raw[i] != Delimiter {
			continue
		}
		if i > 0 && raw[i-1] == escape {
			continue
		}
		if i+1 < len(raw) && strings.IndexByte(pathLookahead, raw[i+1]) >= 0 {
			continue
		}
		tokens = append(tokens, raw[start:i])
		start = i + 1
	}
	return append(tokens, raw[start:])
}

// parseToken splits a name=value token. A token is well formed when it holds
// exactly one '=' and a non-empty name.
func parseToken(token string) (name, value string, ok bool) {
	name, value, ok = strings.Cut(token, "=")
	if !ok || name == "" || strings.Contains(value, "=") {
		return "", "", false
	}
	return name, value, true
}

// resolveSuppressions expands a leading ~, makes path absolute and checks
// that it names a regular file.
func resolveSuppressions(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve suppressions path %q: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil || !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %q", ErrSuppressionsNotFound, abs)
	}
	return abs, nil
}
