package probe

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWritableSucceedsOnWritableDir(t *testing.T) {
	dir := t.TempDir()
	if err := Writable(dir); err != nil {
		t.Fatalf("Writable(%q) = %v, want nil", dir, err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("probe file was not cleaned up: %v", entries)
	}
}

func TestWritableFailsOnMissingDir(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "does-not-exist")
	if err := Writable(missing); err == nil {
		t.Fatalf("expected an error probing a non-existent directory")
	}
}

func TestWritableFailsOnReadOnlyDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.Chmod(dir, 0o500); err != nil {
		t.Fatalf("Chmod: %v", err)
	}
	defer os.Chmod(dir, 0o700)

	if err := Writable(dir); err == nil {
		t.Fatalf("expected an error probing a read-only directory")
	}
}
