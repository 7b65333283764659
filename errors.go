package ffharness

import (
	"github.com/giantswarm/ffharness/internal/profile"
	"github.com/giantswarm/ffharness/internal/sanitizer"
)

// Sentinel errors for error inspection with errors.Is.
// These are immutable constants safe for use in wrapped error chain comparison.
// The *NotFound errors also match fs.ErrNotExist.
const (
	// ErrSuppressionsNotFound is returned when a sanitizer options string
	// names a suppressions file that does not exist.
	ErrSuppressionsNotFound = sanitizer.ErrSuppressionsNotFound

	// ErrTemplateNotFound is returned by CreateProfile when the template
	// profile is not a directory.
	ErrTemplateNotFound = profile.ErrTemplateNotFound

	// ErrPrefsNotFound is returned by CreateProfile and CheckPrefs when a
	// prefs.js file does not exist.
	ErrPrefsNotFound = profile.ErrPrefsNotFound

	// ErrExtensionID is returned by CreateProfile when an unpacked extension
	// has no usable id in its manifest.json or install.rdf.
	ErrExtensionID = profile.ErrExtensionID

	// ErrUnknownExtension is returned by CreateProfile for an extension that
	// is neither an .xpi file nor a directory.
	ErrUnknownExtension = profile.ErrUnknownExtension

	// ErrDuplicateExtension is returned by CreateProfile when two extensions
	// resolve to the same install name.
	ErrDuplicateExtension = profile.ErrDuplicateExtension
)
