// Package sanitizer parses, merges and serializes sanitizer runtime option
// strings such as ASAN_OPTIONS.
//
// An option string holds name=value pairs joined by ':'. Because ':' also
// appears inside option values (Windows drive letters, URIs), the string is
// split with a context-sensitive scanner: a ':' is not a separator when it is
// preceded by '\' or followed by '\', '|' or '/'.
package sanitizer
