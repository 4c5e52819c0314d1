package platform

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// CreateDirectoryIfNotExists creates the directory at path, including any
// missing parents, when it does not already exist.
func CreateDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", path, err)
		}
	}
	return nil
}

// GetHomeDownloadsDir returns the user's Downloads directory, creating it
// when missing. This is the default destination for converted images.
func GetHomeDownloadsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}

	downloads := filepath.Join(home, "Downloads")
	if err := CreateDirectoryIfNotExists(downloads); err != nil {
		return "", err
	}
	return downloads, nil
}

// GetFileSize returns the size of the file at path in bytes.
func GetFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("reading file info: %w", err)
	}
	return info.Size(), nil
}

// UniquePath returns path unchanged when nothing exists there, otherwise
// the first "name (N).ext" variant that is free. Saved conversions never
// overwrite existing files.
func UniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s (%d)%s", base, i, ext)
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}

// OpenFileInManager reveals the file in the system file manager with the
// file selected where the platform supports it.
func OpenFileInManager(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", "-R", absPath).Start()
	case "windows":
		// explorer exits non-zero even on success, so errors are ignored.
		exec.Command("explorer", "/select,", absPath).Start()
		return nil
	case "linux":
		return revealInLinuxFileManager(absPath)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}

// revealInLinuxFileManager asks the desktop file manager to highlight the
// file over D-Bus and falls back to opening the containing directory.
func revealInLinuxFileManager(absPath string) error {
	err := exec.Command("dbus-send", "--session",
		"--dest=org.freedesktop.FileManager1",
		"--type=method_call",
		"/org/freedesktop/FileManager1",
		"org.freedesktop.FileManager1.ShowItems",
		fmt.Sprintf("array:string:file://%s", absPath),
		"string:").Run()
	if err == nil {
		return nil
	}

	log.Printf("dbus file manager call failed, falling back to xdg-open: %v", err)
	return exec.Command("xdg-open", filepath.Dir(absPath)).Start()
}

// OpenFileWithDefaultApp opens the file with the application registered
// for its type, typically the system image viewer.
func OpenFileWithDefaultApp(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving path: %w", err)
	}

	if _, err := os.Stat(absPath); err != nil {
		return fmt.Errorf("file not found: %w", err)
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", absPath).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", absPath).Start()
	case "linux":
		return exec.Command("xdg-open", absPath).Start()
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}
