package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestListCharFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"blocks.txt",
		"dots.json",
		"dots_sorted.json",
		"readme.md",
		"zeta.TXT",
	} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("ab"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "nested.txt"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := listCharFiles(dir)
	if err != nil {
		t.Fatal(err)
	}

	// Sorted character files only; earlier outputs, other extensions,
	// and directories are skipped.
	want := []string{
		filepath.Join(dir, "blocks.txt"),
		filepath.Join(dir, "dots.json"),
		filepath.Join(dir, "zeta.TXT"),
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d files, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("file %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestListCharFilesMissingDir(t *testing.T) {
	if _, err := listCharFiles(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Error("Expected error for missing directory")
	}
}
