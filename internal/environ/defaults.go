package environ

// envDefault is a variable set by Build. Forced entries replace any existing
// value; the others are only set when the variable is absent.
type envDefault struct {
	name   string
	value  string
	forced bool
}

// browserDefaults disables the browser sandboxes and crash reporter UI and
// makes debug behavior non-interactive. Never modified after init.
var browserDefaults = []envDefault{
	{name: "G_SLICE", value: "always-malloc", forced: true},
	{name: "MOZ_CC_RUN_DURING_SHUTDOWN", value: "1", forced: true},
	{name: "MOZ_CRASHREPORTER", value: "1", forced: true},
	{name: "MOZ_CRASHREPORTER_NO_REPORT", value: "1", forced: true},
	{name: "MOZ_DISABLE_CONTENT_SANDBOX", value: "1", forced: true},
	{name: "MOZ_DISABLE_GMP_SANDBOX", value: "1", forced: true},
	{name: "MOZ_DISABLE_GPU_SANDBOX", value: "1", forced: true},
	{name: "MOZ_DISABLE_NPAPI_SANDBOX", value: "1", forced: true},
	{name: "MOZ_GDB_SLEEP", value: "0", forced: true},
	{name: "XRE_NO_WINDOWS_CRASH_DIALOG", value: "1", forced: true},
	{name: "XPCOM_DEBUG_BREAK", value: "warn", forced: true},
	// Skia assertions mostly fire on precision issues.
	{name: "MOZ_SKIA_DISABLE_ASSERTS", value: "1"},
	{name: "RUST_BACKTRACE", value: "full"},
}

// Sanitizer option variables.
const (
	ASanOptions        = "ASAN_OPTIONS"
	LSanOptions        = "LSAN_OPTIONS"
	UBSanOptions       = "UBSAN_OPTIONS"
	ASanSymbolizerPath = "ASAN_SYMBOLIZER_PATH"
)

// logPathOption is forced to the harness log prefix for families that set
// logPath.
const logPathOption = "log_path"

// sanitizerOption is a default option. Defaults never replace a value the
// user already set unless forced.
type sanitizerOption struct {
	name   string
	value  string
	forced bool
}

// sanitizerFamily describes one sanitizer option variable.
type sanitizerFamily struct {
	envVar   string
	defaults []sanitizerOption
	// logPath forces log_path to the harness log prefix.
	logPath bool
}

// sanitizerFamilies lists the sanitizer configurations in the order they are
// built. Never modified after init.
//
// https://github.com/google/sanitizers/wiki/SanitizerCommonFlags
var sanitizerFamilies = []sanitizerFamily{
	{
		envVar: ASanOptions,
		defaults: []sanitizerOption{
			{name: "abort_on_error", value: "true"},
			{name: "allocator_may_return_null", value: "true"},
			{name: "check_initialization_order", value: "true"},
			{name: "detect_leaks", value: "false"},
			{name: "disable_coredump", value: "true"},
			{name: "sleep_before_dying", value: "0"},
			{name: "strict_init_order", value: "true"},
			{name: "symbolize", value: "true"},
		},
		logPath: true,
	},
	{
		envVar: LSanOptions,
		defaults: []sanitizerOption{
			{name: "max_leaks", value: "1"},
			{name: "print_suppressions", value: "false"},
		},
	},
	{
		envVar: UBSanOptions,
		defaults: []sanitizerOption{
			{name: "print_stacktrace", value: "1"},
		},
		logPath: true,
	},
}
