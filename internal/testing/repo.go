// Package testing provides fixture helpers for ansigraph tests.
package testing

import (
	"os"
	"path/filepath"
	"testing"
)

// CreateTestRepo materializes a fake Ansible repository in a temp directory.
// files maps repo-relative paths to file content; parent directories are
// created as needed. Returns the repo root. Cleanup is handled by t.TempDir.
func CreateTestRepo(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("Failed to create directory for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", rel, err)
		}
	}
	return root
}

// CreateDirs adds empty directories (repo-relative) under root, for trees
// whose shape matters but whose files do not.
func CreateDirs(t *testing.T, root string, dirs ...string) {
	t.Helper()

	for _, rel := range dirs {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(rel)), 0o755); err != nil {
			t.Fatalf("Failed to create directory %s: %v", rel, err)
		}
	}
}
