// Package profile creates and removes the browser profile directories used by
// the harness. A profile is assembled from an optional template directory, an
// optional prefs.js file and any number of extensions, given either as .xpi
// archives or as unpacked directories identified by manifest.json or
// install.rdf.
//
// Each profile directory is paired with a sibling lock file that stays
// exclusively locked while the creating process owns the profile.
// RemoveStale uses the lock to find profiles abandoned by harnesses that
// exited without cleaning up.
package profile
