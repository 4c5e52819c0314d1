package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/imgshift/imgshift/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog

	// Called after settings were saved so the owner can apply them
	onSaved func()

	// UI components
	downloadsDirEntry *widget.Entry
	autoRevealCheck   *widget.Check
	languageSelect    *widget.Select
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, localization *Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	// Downloads directory selection
	sd.downloadsDirEntry = widget.NewEntry()
	sd.downloadsDirEntry.SetPlaceHolder(sd.localization.GetText(KeyDownloadsDirectory))

	browseDirBtn := widget.NewButton(sd.localization.GetText(KeyBrowse), sd.onBrowseDirectory)
	downloadsDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadsDirEntry)

	// Auto reveal toggle
	sd.autoRevealCheck = widget.NewCheck(sd.localization.GetText(KeyAutoReveal), nil)

	// Language selection
	languageOptions := make([]string, 0, len(config.SupportedLanguages))
	languageOptions = append(languageOptions, config.SupportedLanguages...)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	// Create form
	form := container.NewVBox(
		widget.NewLabel(sd.localization.GetText(KeyDownloadsDirectory)+":"),
		downloadsDirRow,

		widget.NewSeparator(),
		sd.autoRevealCheck,

		widget.NewSeparator(),
		widget.NewLabel(sd.localization.GetText(KeyLanguage)+":"),
		sd.languageSelect,
	)

	// Create dialog with buttons
	sd.dialog = dialog.NewCustomConfirm(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySave),
		sd.localization.GetText(KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(460, 320))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadsDirEntry.SetText(sd.settings.GetDownloadsDir())
	sd.autoRevealCheck.SetChecked(sd.settings.GetAutoReveal())
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadsDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if dir := sd.downloadsDirEntry.Text; dir != "" {
		sd.settings.SetDownloadsDir(dir)
	}

	sd.settings.SetAutoReveal(sd.autoRevealCheck.Checked)

	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}

	// Show confirmation
	dialog.ShowInformation(
		sd.localization.GetText(KeySettings),
		sd.localization.GetText(KeySettingsSaved),
		sd.window,
	)
}
