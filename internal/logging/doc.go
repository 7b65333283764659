// Package logging holds the package-level slog logger shared by the harness
// packages.
package logging
