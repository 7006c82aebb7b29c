package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteManifest creates dir/Cargo.toml declaring a package called name and
// returns the manifest path.
func WriteManifest(t testing.TB, dir, name string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, "Cargo.toml")
	content := "[package]\nname = \"" + name + "\"\nversion = \"0.1.0\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest %s: %v", path, err)
	}
	return path
}

// NewProject lays out a package in a fresh temp directory and returns the
// project root, a nested source directory, and the manifest path.
func NewProject(t testing.TB, name string) (root, srcDir, manifestPath string) {
	t.Helper()

	root = filepath.Join(t.TempDir(), name)
	manifestPath = WriteManifest(t, root, name)
	srcDir = filepath.Join(root, "src", "nested")
	if err := os.MkdirAll(srcDir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", srcDir, err)
	}
	return root, srcDir, manifestPath
}
