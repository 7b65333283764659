// Package fileutil provides the file operations used to build and tear down
// browser profiles: file and tree copies, directory creation, and tree
// removal that recovers from read-only entries.
package fileutil
