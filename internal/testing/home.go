// Package testing holds helpers shared by package tests.
package testing

import (
	"os"
	"path/filepath"
	"testing"
)

// IsolateHome points HOME at a fresh temp directory and changes into a
// fresh working directory below another one, so config lookups that walk
// up from the working directory or read the home directory see only what
// the test writes. Both are restored via t.Cleanup.
func IsolateHome(t *testing.T) (home, workdir string) {
	t.Helper()

	home = t.TempDir()
	workdir = filepath.Join(t.TempDir(), "project", "sub")
	if err := os.MkdirAll(workdir, 0755); err != nil {
		t.Fatalf("Failed to create working directory: %v", err)
	}

	t.Setenv("HOME", home)

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(workdir); err != nil {
		t.Fatalf("Failed to change working directory: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})

	return home, workdir
}

// WriteFile writes content to path, creating parent directories.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}
