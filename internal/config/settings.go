package config

import (
	"log"

	"fyne.io/fyne/v2"

	"github.com/imgshift/imgshift/internal/platform"
)

const (
	prefKeyDownloadsDir = "downloads_dir"
	prefKeyAutoReveal   = "auto_reveal"
	prefKeyLanguage     = "language"

	// DefaultLanguage is used when no preference is stored or the stored
	// value is not a supported language code.
	DefaultLanguage = "en"
)

// SupportedLanguages lists the UI language codes the client ships with.
var SupportedLanguages = []string{"en", "ru", "pt"}

// Settings provides typed access to the user preferences persisted by the
// Fyne preferences store.
type Settings struct {
	app fyne.App
}

// NewSettings creates a Settings backed by the given app's preferences.
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadsDir returns the directory converted images are saved to.
// When no preference is stored it falls back to the user's Downloads
// directory, and to the working directory as a last resort.
func (s *Settings) GetDownloadsDir() string {
	if dir := s.app.Preferences().String(prefKeyDownloadsDir); dir != "" {
		return dir
	}

	dir, err := platform.GetHomeDownloadsDir()
	if err != nil {
		log.Printf("falling back to working directory for downloads: %v", err)
		return "."
	}
	return dir
}

// SetDownloadsDir stores the directory converted images are saved to.
func (s *Settings) SetDownloadsDir(dir string) {
	s.app.Preferences().SetString(prefKeyDownloadsDir, dir)
}

// GetAutoReveal reports whether finished conversions are revealed in the
// file manager automatically. Enabled by default.
func (s *Settings) GetAutoReveal() bool {
	return s.app.Preferences().BoolWithFallback(prefKeyAutoReveal, true)
}

// SetAutoReveal stores the auto reveal preference.
func (s *Settings) SetAutoReveal(enabled bool) {
	s.app.Preferences().SetBool(prefKeyAutoReveal, enabled)
}

// GetLanguage returns the stored UI language code. Unknown codes are
// clamped to the default so a stale preference cannot break the UI.
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().StringWithFallback(prefKeyLanguage, DefaultLanguage)
	for _, supported := range SupportedLanguages {
		if lang == supported {
			return lang
		}
	}
	return DefaultLanguage
}

// SetLanguage stores the UI language code.
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(prefKeyLanguage, lang)
}
