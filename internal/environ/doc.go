// Package environ builds the environment used to launch the browser under
// test: fixed sandbox and crash-reporter toggles, merged sanitizer option
// strings, symbolizer resolution and caller overrides.
package environ
