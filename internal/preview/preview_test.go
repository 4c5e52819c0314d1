package preview

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAcquireCreatesSnapshot(t *testing.T) {
	manager := NewManager(t.TempDir())

	path, err := manager.Acquire(strings.NewReader("image-bytes"), ".png")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Errorf("snapshot content = %q, expected %q", data, "image-bytes")
	}

	if filepath.Ext(path) != ".png" {
		t.Errorf("snapshot extension = %v, expected .png", filepath.Ext(path))
	}
	if manager.LivePath() != path {
		t.Errorf("LivePath() = %v, expected %v", manager.LivePath(), path)
	}
}

func TestAcquireReplacesPreviousSnapshot(t *testing.T) {
	dir := t.TempDir()
	manager := NewManager(dir)

	first, err := manager.Acquire(strings.NewReader("first"), ".png")
	if err != nil {
		t.Fatalf("first Acquire() error = %v", err)
	}

	second, err := manager.Acquire(strings.NewReader("second"), ".jpg")
	if err != nil {
		t.Fatalf("second Acquire() error = %v", err)
	}

	if first == second {
		t.Error("second snapshot reused the first path")
	}
	if _, err := os.Stat(first); !os.IsNotExist(err) {
		t.Errorf("first snapshot still exists after replacement")
	}
	if manager.LivePath() != second {
		t.Errorf("LivePath() = %v, expected %v", manager.LivePath(), second)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading snapshot dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("snapshot dir holds %d files, expected 1", len(entries))
	}
}

func TestRelease(t *testing.T) {
	manager := NewManager(t.TempDir())

	path, err := manager.Acquire(strings.NewReader("data"), ".webp")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	manager.Release()

	if manager.LivePath() != "" {
		t.Errorf("LivePath() after Release = %v, expected empty", manager.LivePath())
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("snapshot still exists after Release")
	}

	// Releasing with nothing alive must be a no-op.
	manager.Release()
}

func TestAcquireFile(t *testing.T) {
	sourceDir := t.TempDir()
	sourcePath := filepath.Join(sourceDir, "photo.JPEG")
	if err := os.WriteFile(sourcePath, []byte("jpeg-bytes"), 0o644); err != nil {
		t.Fatalf("writing source file: %v", err)
	}

	manager := NewManager(t.TempDir())
	path, err := manager.AcquireFile(sourcePath)
	if err != nil {
		t.Fatalf("AcquireFile() error = %v", err)
	}

	if filepath.Ext(path) != ".jpeg" {
		t.Errorf("snapshot extension = %v, expected .jpeg", filepath.Ext(path))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading snapshot: %v", err)
	}
	if string(data) != "jpeg-bytes" {
		t.Errorf("snapshot content = %q, expected %q", data, "jpeg-bytes")
	}
}

func TestAcquireFileMissingSource(t *testing.T) {
	manager := NewManager(t.TempDir())

	if _, err := manager.AcquireFile(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("AcquireFile() on missing source expected error, got nil")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("read failed")
}

func TestAcquireFailureKeepsPreviousSnapshot(t *testing.T) {
	dir := t.TempDir()
	manager := NewManager(dir)

	first, err := manager.Acquire(strings.NewReader("first"), ".png")
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	if _, err := manager.Acquire(failingReader{}, ".png"); err == nil {
		t.Fatal("Acquire() with failing reader expected error, got nil")
	}

	if manager.LivePath() != first {
		t.Errorf("LivePath() after failed acquire = %v, expected %v", manager.LivePath(), first)
	}
	if _, err := os.Stat(first); err != nil {
		t.Errorf("previous snapshot was removed on failure: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading snapshot dir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("snapshot dir holds %d files, expected 1", len(entries))
	}
}
