package logging

import (
	"log/slog"
	"sync/atomic"
)

// logger holds the logger installed with SetLogger. A nil value means the
// default logger is used.
var logger atomic.Pointer[slog.Logger]

// defaultLogger caches slog.Default() with the component attribute so it is
// built once. SetLogger(nil) clears the cache, which lets a later
// slog.SetDefault take effect.
var defaultLogger atomic.Pointer[slog.Logger]

// Logger returns the harness logger. Without a custom logger it returns
// slog.Default() tagged with component=ffharness. Safe for concurrent use.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	l := slog.Default().With("component", "ffharness")
	if defaultLogger.CompareAndSwap(nil, l) {
		return l
	}
	if l2 := defaultLogger.Load(); l2 != nil {
		return l2
	}
	return l
}

// OrDefault returns l, or Logger() when l is nil.
func OrDefault(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return Logger()
}

// SetLogger replaces the harness logger. Passing nil restores the default.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
	defaultLogger.Store(nil)
}
