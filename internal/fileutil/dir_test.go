package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDir(t *testing.T) {
	t.Parallel()
	t.Run("creates new directory", func(t *testing.T) {
		t.Parallel()
		base := t.TempDir()
		dir := filepath.Join(base, "newdir")

		if err := EnsureDir(dir); err != nil {
			t.Fatalf("EnsureDir() error: %v", err)
		}

		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("stat after EnsureDir: %v", err)
		}
		if !info.IsDir() {
			t.Error("expected directory, got file")
		}
	})

	t.Run("creates nested directories", func(t *testing.T) {
		t.Parallel()
		base := t.TempDir()
		dir := filepath.Join(base, "a", "b", "c")

		if err := EnsureDir(dir); err != nil {
			t.Fatalf("EnsureDir() error: %v", err)
		}

		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("stat after EnsureDir: %v", err)
		}
		if !info.IsDir() {
			t.Error("expected directory, got file")
		}
	})

	t.Run("idempotent on existing directory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()

		if err := EnsureDir(dir); err != nil {
			t.Fatalf("EnsureDir() on existing dir error: %v", err)
		}

		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("stat after EnsureDir: %v", err)
		}
		if !info.IsDir() {
			t.Error("expected directory, got file")
		}
	})
}

func TestEnsureDirForFile(t *testing.T) {
	t.Parallel()
	t.Run("creates parent directory", func(t *testing.T) {
		t.Parallel()
		base := t.TempDir()
		filePath := filepath.Join(base, "subdir", "file.txt")

		if err := EnsureDirForFile(filePath); err != nil {
			t.Fatalf("EnsureDirForFile() error: %v", err)
		}

		parentDir := filepath.Dir(filePath)
		info, err := os.Stat(parentDir)
		if err != nil {
			t.Fatalf("stat parent dir: %v", err)
		}
		if !info.IsDir() {
			t.Error("expected parent to be directory")
		}
	})

	t.Run("creates deeply nested parent", func(t *testing.T) {
		t.Parallel()
		base := t.TempDir()
		filePath := filepath.Join(base, "a", "b", "c", "file.txt")

		if err := EnsureDirForFile(filePath); err != nil {
			t.Fatalf("EnsureDirForFile() error: %v", err)
		}

		parentDir := filepath.Dir(filePath)
		info, err := os.Stat(parentDir)
		if err != nil {
			t.Fatalf("stat parent dir: %v", err)
		}
		if !info.IsDir() {
			t.Error("expected parent to be directory")
		}
	})

	t.Run("succeeds when parent already exists", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		filePath := filepath.Join(dir, "file.txt")

		if err := EnsureDirForFile(filePath); err != nil {
			t.Fatalf("EnsureDirForFile() error: %v", err)
		}
	})
}

func TestRemoveTree(t *testing.T) {
	t.Parallel()

	t.Run("removes nested tree", func(t *testing.T) {
		t.Parallel()
		root := filepath.Join(t.TempDir(), "profile")
		if err := os.MkdirAll(filepath.Join(root, "extensions", "a@test"), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(root, "extensions", "a@test", "manifest.json"), []byte("{}"), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}

		if err := RemoveTree(root); err != nil {
			t.Fatalf("RemoveTree() error: %v", err)
		}
		if _, err := os.Stat(root); !os.IsNotExist(err) {
			t.Errorf("tree still present: %v", err)
		}
	})

	t.Run("removes read-only directories", func(t *testing.T) {
		t.Parallel()
		if os.Geteuid() == 0 {
			t.Skip("permission checks do not apply to root")
		}
		root := filepath.Join(t.TempDir(), "profile")
		locked := filepath.Join(root, "locked")
		if err := os.MkdirAll(locked, 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(filepath.Join(locked, "prefs.js"), []byte("x"), 0o444); err != nil {
			t.Fatalf("write: %v", err)
		}
		if err := os.Chmod(locked, 0o500); err != nil {
			t.Fatalf("chmod: %v", err)
		}

		if err := RemoveTree(root); err != nil {
			t.Fatalf("RemoveTree() error: %v", err)
		}
		if _, err := os.Stat(root); !os.IsNotExist(err) {
			t.Errorf("tree still present: %v", err)
		}
	})

	t.Run("missing path is not an error", func(t *testing.T) {
		t.Parallel()
		if err := RemoveTree(filepath.Join(t.TempDir(), "missing")); err != nil {
			t.Errorf("RemoveTree() error: %v", err)
		}
	})
}
