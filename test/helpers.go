package test

import (
	"os"
	"path/filepath"
	"testing"
)

// CreateTempfile writes b to a new temporary file. The file is left open.
func CreateTempfile(b []byte, t *testing.T) *os.File {
	return CreateTempfilePattern(b, "", t)
}

// CreateTempfilePattern is CreateTempfile with an os.CreateTemp name
// pattern, so callers can pick the extension, as in "*.toml".
func CreateTempfilePattern(b []byte, pattern string, t *testing.T) *os.File {
	t.Helper()

	f, err := os.CreateTemp(os.TempDir(), pattern)
	if err != nil {
		t.Fatal(err)
	}

	if len(b) > 0 {
		if _, err := f.Write(b); err != nil {
			t.Fatal(err)
		}
	}

	return f
}

// DeleteTempfile closes and removes a file made by CreateTempfile.
func DeleteTempfile(f *os.File, t *testing.T) {
	t.Helper()

	f.Close()
	if err := os.Remove(f.Name()); err != nil {
		t.Fatal(err)
	}
}

// CreateTempDir creates a directory holding the given files, keyed by name.
// It is removed when the test finishes.
func CreateTempDir(files map[string]string, t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	for name, contents := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}
