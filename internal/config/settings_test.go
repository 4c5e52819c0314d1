package config

import (
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestSettingsDownloadsDir(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	settings := NewSettings(test.NewApp())

	// Without a stored preference the home Downloads directory is used.
	if dir := settings.GetDownloadsDir(); dir != filepath.Join(tempHome, "Downloads") {
		t.Errorf("GetDownloadsDir() default = %v, expected %v", dir, filepath.Join(tempHome, "Downloads"))
	}

	custom := filepath.Join(tempHome, "converted")
	settings.SetDownloadsDir(custom)
	if dir := settings.GetDownloadsDir(); dir != custom {
		t.Errorf("GetDownloadsDir() after set = %v, expected %v", dir, custom)
	}
}

func TestSettingsAutoReveal(t *testing.T) {
	settings := NewSettings(test.NewApp())

	if !settings.GetAutoReveal() {
		t.Error("GetAutoReveal() default = false, expected true")
	}

	settings.SetAutoReveal(false)
	if settings.GetAutoReveal() {
		t.Error("GetAutoReveal() after SetAutoReveal(false) = true, expected false")
	}
}

func TestSettingsLanguage(t *testing.T) {
	settings := NewSettings(test.NewApp())

	if lang := settings.GetLanguage(); lang != DefaultLanguage {
		t.Errorf("GetLanguage() default = %v, expected %v", lang, DefaultLanguage)
	}

	settings.SetLanguage("ru")
	if lang := settings.GetLanguage(); lang != "ru" {
		t.Errorf("GetLanguage() after set = %v, expected ru", lang)
	}
}

func TestSettingsLanguageClampsUnknownCode(t *testing.T) {
	settings := NewSettings(test.NewApp())

	settings.SetLanguage("klingon")
	if lang := settings.GetLanguage(); lang != DefaultLanguage {
		t.Errorf("GetLanguage() with unknown stored code = %v, expected %v", lang, DefaultLanguage)
	}
}
