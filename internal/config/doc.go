// Package config loads the YAML harness configuration read by the ffharness
// command. Every field is optional; command-line flags take precedence over
// file values and built-in defaults apply to anything left unset.
package config
