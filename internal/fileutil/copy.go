package fileutil

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/giantswarm/ffharness/internal/sentinel"
)

// ErrEmptySrc is returned when a source path is empty.
const ErrEmptySrc = sentinel.Error("source path must not be empty")

// ErrEmptyDst is returned when a destination path is empty.
const ErrEmptyDst = sentinel.Error("destination path must not be empty")

// CopyFile copies the contents of src to dst, creating parent directories as
// needed. dst is created with mode, or with the mode of src when mode is
// zero. A partially written dst is removed on failure.
func CopyFile(src, dst string, mode fs.FileMode) (retErr error) {
	if src == "" {
		return ErrEmptySrc
	}
	if dst == "" {
		return ErrEmptyDst
	}
	if err := EnsureDirForFile(dst); err != nil {
		return fmt.Errorf("prepare destination: %w", err)
	}

	srcFile, err := os.Open(src) //nolint:gosec // G304: paths come from harness configuration
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer func() {
		if closeErr := srcFile.Close(); closeErr != nil && retErr == nil {
			retErr = fmt.Errorf("close source: %w", closeErr)
		}
	}()

	if mode == 0 {
		info, err := srcFile.Stat()
		if err != nil {
			return fmt.Errorf("stat source: %w", err)
		}
		mode = info.Mode().Perm()
	}

	dstFile, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode) //nolint:gosec // G304: see above
	if err != nil {
		return fmt.Errorf("create destination: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = os.Remove(dst)
		}
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		_ = dstFile.Close()
		return fmt.Errorf("copy: %w", err)
	}
	if err := dstFile.Close(); err != nil {
		return fmt.Errorf("close destination: %w", err)
	}
	return nil
}

// CopyDir copies the tree rooted at src into dst, which may already exist.
// Symbolic links are followed, so dst receives the linked content.
func CopyDir(src, dst string) error {
	if src == "" {
		return ErrEmptySrc
	}
	if dst == "" {
		return ErrEmptyDst
	}
	src, err := filepath.EvalSymlinks(src)
	if err != nil {
		return fmt.Errorf("resolve source: %w", err)
	}
	return filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		switch {
		case info.IsDir() && d.Type()&fs.ModeSymlink != 0:
			return CopyDir(path, target)
		case info.IsDir():
			if err := os.MkdirAll(target, info.Mode().Perm()|0o700); err != nil {
				return fmt.Errorf("create directory %s: %w", target, err)
			}
			return nil
		case info.Mode().IsRegular():
			if err := CopyFile(path, target, info.Mode().Perm()); err != nil {
				return fmt.Errorf("copy %s: %w", path, err)
			}
			return nil
		default:
			// Sockets, devices and FIFOs have no content to copy.
			return nil
		}
	})
}
