// Package preview manages the temporary snapshot files behind the image
// preview. The picked file is copied to a private location so the preview
// stays valid even if the original is moved or deleted, and at most one
// snapshot is alive at a time.
package preview

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/imgshift/imgshift/internal/platform"
)

// Manager owns the lifecycle of preview snapshot files. Acquiring a new
// snapshot releases the previous one, so stale files never accumulate.
type Manager struct {
	mu       sync.Mutex
	dir      string
	livePath string
}

// NewManager creates a Manager writing snapshots under baseDir. An empty
// baseDir selects a directory inside the system temp location.
func NewManager(baseDir string) *Manager {
	if baseDir == "" {
		baseDir = filepath.Join(os.TempDir(), "imgshift-preview")
	}
	return &Manager{dir: baseDir}
}

// AcquireFile snapshots the file at path and returns the snapshot path.
// The previous snapshot, if any, is removed.
func (m *Manager) AcquireFile(path string) (string, error) {
	source, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	return m.Acquire(source, filepath.Ext(path))
}

// Acquire copies source into a fresh snapshot file with the given
// extension and returns its path. On failure the previous snapshot is
// kept so the UI can continue showing it.
func (m *Manager) Acquire(source io.Reader, ext string) (string, error) {
	if err := platform.CreateDirectoryIfNotExists(m.dir); err != nil {
		return "", err
	}

	path := filepath.Join(m.dir, generateSnapshotID()+normalizeExt(ext))
	dest, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating snapshot file: %w", err)
	}

	if _, err := io.Copy(dest, source); err != nil {
		dest.Close()
		os.Remove(path)
		return "", fmt.Errorf("writing snapshot file: %w", err)
	}
	if err := dest.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("closing snapshot file: %w", err)
	}

	m.mu.Lock()
	previous := m.livePath
	m.livePath = path
	m.mu.Unlock()

	if previous != "" {
		if err := os.Remove(previous); err != nil && !os.IsNotExist(err) {
			log.Printf("removing previous preview snapshot: %v", err)
		}
	}

	return path, nil
}

// LivePath returns the path of the current snapshot, or an empty string
// when none is alive.
func (m *Manager) LivePath() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.livePath
}

// Release removes the current snapshot. Safe to call when nothing is
// alive.
func (m *Manager) Release() {
	m.mu.Lock()
	path := m.livePath
	m.livePath = ""
	m.mu.Unlock()

	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("removing preview snapshot: %v", err)
	}
}

// generateSnapshotID returns a unique name for a snapshot file, falling
// back to a timestamp when UUID generation fails.
func generateSnapshotID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf("preview-%d", time.Now().UnixNano())
	}
	return "preview-" + id.String()
}

// normalizeExt lowercases the extension and ensures the leading dot.
func normalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
