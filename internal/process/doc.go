// Package process waits for a process tree to release open files.
//
// WaitForRelease polls an Inspector, by default the gopsutil-backed
// SystemInspector, until neither the process nor (optionally) any of its
// descendants holds one of the watched files open. Paths are normalized
// by resolving symbolic links before comparison.
package process
