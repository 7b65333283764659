package sentinel

import "io/fs"

// Compile-time checks that both sentinel kinds implement error.
var (
	_ error = Error("")
	_ error = Missing("")
)

// Error is an immutable error type backed by a string constant, so sentinels
// can be declared const. errors.Is matches it by value through wrapped chains.
type Error string

// Error implements the error interface.
func (e Error) Error() string {
	return string(e)
}

// Missing is a const sentinel for a required file or directory that does not
// exist. Besides matching itself, it matches fs.ErrNotExist so callers can
// treat every missing-input condition uniformly.
type Missing string

// Error implements the error interface.
func (e Missing) Error() string {
	return string(e)
}

// Is reports whether target is fs.ErrNotExist.
func (e Missing) Is(target error) bool {
	return target == fs.ErrNotExist
}
