package ui

import (
	"context"
	"errors"
	"log"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"github.com/imgshift/imgshift/internal/config"
	"github.com/imgshift/imgshift/internal/convert"
	"github.com/imgshift/imgshift/internal/model"
	"github.com/imgshift/imgshift/internal/platform"
	"github.com/imgshift/imgshift/internal/preview"
	"github.com/imgshift/imgshift/internal/verify"
)

// Extensions offered by the image picker dialog.
var pickerExtensions = []string{".png", ".jpg", ".jpeg", ".webp", ".gif", ".ico", ".bmp", ".tiff"}

// RootUI represents the main UI structure
type RootUI struct {
	window fyne.Window

	convertSvc convert.Converter
	verifier   verify.Verifier
	previews   *preview.Manager

	settings     *config.Settings
	localization *Localization

	// File intake and conversion controls
	pickBtn      *widget.Button
	fileLabel    *widget.Label
	previewImage *canvas.Image
	formatSelect *widget.Select
	outputEntry  *widget.Entry
	convertBtn   *widget.Button

	// Verification status
	verifyStatusLabel *widget.Label
	verifyRetryBtn    *widget.Button

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	notificationSpinner   *widget.ProgressBarInfinite

	// Conversion history
	historyList   *widget.List
	historyHeader *widget.Label
	historyTasks  []*model.ConversionTask

	selectedPath string
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, app fyne.App, convertSvc convert.Converter, verifier verify.Verifier, previews *preview.Manager) *RootUI {
	// Initialize settings
	settings := config.NewSettings(app)

	// Initialize localization
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	// Ensure the configured downloads directory exists and the service uses it
	downloadsDir := settings.GetDownloadsDir()
	platform.CreateDirectoryIfNotExists(downloadsDir)
	convertSvc.SetDownloadsDirectory(downloadsDir)

	ui := &RootUI{
		window:       window,
		convertSvc:   convertSvc,
		verifier:     verifier,
		previews:     previews,
		settings:     settings,
		localization: localization,
	}

	log.Printf("RootUI initialized with conversion service: %v", ui.convertSvc != nil)

	// Set window title
	window.SetTitle(localization.GetText(KeyAppTitle))

	// Set up callbacks for conversion and verification updates
	ui.convertSvc.SetUpdateCallback(ui.onTaskUpdate)
	ui.verifier.SetStateCallback(ui.onVerifyStateChange)

	// Preview snapshots live until the window goes away
	window.SetOnClosed(previews.Release)

	ui.setupUI()

	ui.historyTasks = ui.convertSvc.GetAllTasks()
	ui.historyList.Refresh()

	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	// Create menu
	ui.createMenu()

	// Create file intake controls
	ui.pickBtn = widget.NewButton(ui.localization.GetText(KeyPickImage), ui.onPickImage)

	ui.fileLabel = widget.NewLabel(ui.localization.GetText(KeyNoFileSelected))
	ui.fileLabel.Truncation = fyne.TextTruncateEllipsis

	// Create convert button
	ui.convertBtn = widget.NewButton(ui.localization.GetText(KeyConvert), ui.onConvertClick)
	ui.convertBtn.Importance = widget.HighImportance

	// Create settings button
	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	// Create logo
	logo, err := LoadLogoResource()
	var logoImage *canvas.Image
	if err == nil {
		logoImage = canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(32, 32))
		logoImage.FillMode = canvas.ImageFillContain
	} else {
		// Fallback to text if logo loading fails
		logoImage = nil
	}

	// Create top panel (pick row) with logo
	var topPanel *fyne.Container
	if logoImage != nil {
		topPanel = container.NewBorder(nil, nil, container.NewHBox(logoImage, settingsBtn, ui.pickBtn), ui.convertBtn, ui.fileLabel)
	} else {
		topPanel = container.NewBorder(nil, nil, container.NewHBox(settingsBtn, ui.pickBtn), ui.convertBtn, ui.fileLabel)
	}

	// Create format/output row
	ui.formatSelect = widget.NewSelect(model.FormatNames(), func(string) {
		ui.updateConvertButton()
	})
	ui.formatSelect.SetSelected(string(model.FormatWebP))

	ui.outputEntry = widget.NewEntry()
	ui.outputEntry.SetPlaceHolder(ui.localization.GetText(KeyOutputName))

	formatRow := container.NewBorder(nil, nil,
		container.NewHBox(widget.NewLabel(ui.localization.GetText(KeyConvertTo)+":"), ui.formatSelect),
		nil, ui.outputEntry)

	// Create verification status row
	ui.verifyStatusLabel = widget.NewLabel("")
	ui.verifyRetryBtn = widget.NewButton(ui.localization.GetText(KeyRetry), ui.onRetryVerification)
	ui.verifyRetryBtn.Importance = widget.LowImportance
	ui.verifyRetryBtn.Hide()
	verifyRow := container.NewHBox(ui.verifyStatusLabel, ui.verifyRetryBtn)

	// Create notification panel under the controls (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationSpinner = widget.NewProgressBarInfinite()
	ui.notificationSpinner.Hide()
	ui.notificationContainer = container.NewHBox(ui.notificationSpinner, container.NewPadded(ui.notificationLabel))
	ui.notificationContainer.Hide()

	// Combine control rows at the top
	topCombined := container.NewVBox(topPanel, formatRow, verifyRow, ui.notificationContainer)

	// Create preview pane
	ui.previewImage = &canvas.Image{FillMode: canvas.ImageFillContain}
	ui.previewImage.SetMinSize(fyne.NewSize(PreviewMinWidth, PreviewMinHeight))
	previewPane := container.NewPadded(ui.previewImage)

	// Create conversion history list
	ui.historyList = widget.NewList(
		func() int {
			return len(ui.historyTasks)
		},
		func() fyne.CanvasObject { return ui.createHistoryItem() },
		func(id widget.ListItemID, obj fyne.CanvasObject) { ui.updateHistoryItem(id, obj) },
	)

	ui.historyHeader = widget.NewLabel(ui.localization.GetText(KeyHistory))
	ui.historyHeader.TextStyle = fyne.TextStyle{Bold: true}
	historyPane := container.NewBorder(ui.historyHeader, nil, nil, nil, ui.historyList)

	split := container.NewHSplit(previewPane, historyPane)
	split.SetOffset(0.42)

	// Create main layout
	content := container.NewBorder(
		topCombined, // top
		nil,         // bottom
		nil,         // left
		nil,         // right
		split,       // center - preview and history
	)

	ui.window.SetContent(content)

	ui.applyVerifyState(ui.verifier.State())
	ui.updateConvertButton()

	log.Printf("UI setup completed successfully")
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	// Settings menu item
	settingsItem := fyne.NewMenuItem(ui.localization.GetText(KeySettings), ui.onShowSettings)

	// Language submenu
	languageMenu := fyne.NewMenu(ui.localization.GetText(KeyLanguage))

	availableLanguages := ui.localization.GetAvailableLanguages()
	for code, name := range availableLanguages {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})

		// Mark current language
		if ui.localization.GetCurrentLanguage() == code {
			langItem.Checked = true
		}

		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	// Create main menu
	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.localization.GetText(KeyFile), settingsItem),
		languageMenu,
	)

	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	// Update localization
	ui.localization.SetLanguage(langCode)

	// Save to settings
	ui.settings.SetLanguage(langCode)

	// Update UI texts
	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	// Update window title
	ui.window.SetTitle(ui.localization.GetText(KeyAppTitle))

	// Update UI elements
	ui.pickBtn.SetText(ui.localization.GetText(KeyPickImage))
	ui.convertBtn.SetText(ui.localization.GetText(KeyConvert))
	ui.outputEntry.SetPlaceHolder(ui.localization.GetText(KeyOutputName))
	ui.verifyRetryBtn.SetText(ui.localization.GetText(KeyRetry))
	ui.historyHeader.SetText(ui.localization.GetText(KeyHistory))
	if ui.selectedPath == "" {
		ui.fileLabel.SetText(ui.localization.GetText(KeyNoFileSelected))
	}
	ui.applyVerifyState(ui.verifier.State())

	// Refresh history list to update button texts
	ui.historyList.Refresh()
}

// onPickImage opens the image picker dialog
func (ui *RootUI) onPickImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			log.Printf("Error picking file: %v", err)
			widget.ShowPopUp(widget.NewLabel("Error: "+err.Error()), ui.window.Canvas())
			return
		}
		if reader == nil {
			// Dialog cancelled
			return
		}
		defer reader.Close()

		ui.setSelectedFile(reader.URI().Path())
	}, ui.window)

	fd.SetFilter(storage.NewExtensionFileFilter(pickerExtensions))
	fd.Show()
}

// setSelectedFile records the chosen source file and refreshes the preview
func (ui *RootUI) setSelectedFile(path string) {
	log.Printf("Selected source file: %s", path)

	ui.selectedPath = path
	ui.fileLabel.SetText(filepath.Base(path))
	ui.hideNotification()

	// A preview failure must not block conversion of the selected file
	snapshot, err := ui.previews.AcquireFile(path)
	if err != nil {
		log.Printf("Preview snapshot failed for %s: %v", path, err)
		ui.showNotification(ui.localization.GetText(KeyPreviewFailed), false)
		ui.previewImage.File = ""
		ui.previewImage.Resource = nil
	} else {
		ui.previewImage.File = snapshot
	}
	ui.previewImage.Refresh()

	ui.updateConvertButton()
}

// updateConvertButton enables the convert button only when a conversion can start
func (ui *RootUI) updateConvertButton() {
	if ui.convertBtn == nil {
		return
	}

	if ui.selectedPath != "" && !ui.convertSvc.IsBusy() && ui.verifier.State().CanExecute() {
		ui.convertBtn.Enable()
	} else {
		ui.convertBtn.Disable()
	}
}

// onConvertClick handles the convert button click
func (ui *RootUI) onConvertClick() {
	if ui.selectedPath == "" {
		ui.showNotification(ui.localization.GetText(KeyNoFileSelected), false)
		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyNoFileSelected)), ui.window.Canvas())
		return
	}

	target, err := model.ParseFormat(ui.formatSelect.Selected)
	if err != nil {
		widget.ShowPopUp(widget.NewLabel("Error: "+err.Error()), ui.window.Canvas())
		return
	}

	task, err := ui.convertSvc.Submit(convert.Request{
		SourcePath: ui.selectedPath,
		Target:     target,
		OutputName: strings.TrimSpace(ui.outputEntry.Text),
	})
	if err != nil {
		if errors.Is(err, convert.ErrConversionInFlight) {
			widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyConversionInProgress)), ui.window.Canvas())
		} else {
			widget.ShowPopUp(widget.NewLabel("Error: "+err.Error()), ui.window.Canvas())
		}
		return
	}

	log.Printf("Conversion submitted: ID=%s, target=%s", task.ID, task.Target)

	ui.outputEntry.SetText("")
	ui.historyTasks = ui.convertSvc.GetAllTasks()
	ui.historyList.Refresh()
	ui.updateConvertButton()

	widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyConversionStarted)), ui.window.Canvas())
}

// showNotification displays a message in the notification panel under the controls.
// When spinning is true, a spinner is shown to indicate background activity.
func (ui *RootUI) showNotification(message string, spinning bool) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationLabel.SetText(message)
		if spinning {
			ui.notificationSpinner.Show()
		} else {
			ui.notificationSpinner.Hide()
		}
		ui.notificationContainer.Show()
		ui.notificationContainer.Refresh()
	})
}

// hideNotification hides the notification panel.
func (ui *RootUI) hideNotification() {
	if ui.notificationContainer == nil || ui.notificationSpinner == nil {
		return
	}
	fyne.Do(func() {
		ui.notificationSpinner.Hide()
		ui.notificationContainer.Hide()
	})
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.localization, ui.window, ui.onSettingsSaved).Show()
}

// onSettingsSaved applies saved settings to the running services
func (ui *RootUI) onSettingsSaved() {
	dir := ui.settings.GetDownloadsDir()
	platform.CreateDirectoryIfNotExists(dir)
	ui.convertSvc.SetDownloadsDirectory(dir)

	ui.localization.SetLanguage(ui.settings.GetLanguage())
	ui.refreshUITexts()
	ui.createMenu()
}

// createHistoryItem creates a new history item widget
func (ui *RootUI) createHistoryItem() fyne.CanvasObject {
	// Placeholder row, updated in updateHistoryItem
	dummyTask := &model.ConversionTask{
		ID:     "placeholder",
		Status: model.TaskStatusPending,
	}

	row := NewHistoryRow(dummyTask, ui.localization)
	row.SetCallbacks(
		ui.onRevealFile,
		ui.onOpenFile,
		ui.onRemoveTask,
	)

	return row
}

// updateHistoryItem updates a history item with current data
func (ui *RootUI) updateHistoryItem(id widget.ListItemID, item fyne.CanvasObject) {
	if id >= len(ui.historyTasks) {
		return
	}

	task := ui.historyTasks[id]
	if task == nil {
		return
	}

	if row, ok := item.(*HistoryRow); ok {
		// Re-set callbacks each update so recycled rows stay connected
		row.SetCallbacks(
			ui.onRevealFile,
			ui.onOpenFile,
			ui.onRemoveTask,
		)

		row.UpdateTask(task)
	}
}

// onRevealFile handles revealing a file in the system file manager
func (ui *RootUI) onRevealFile(filePath string) {
	if filePath == "" {
		log.Printf("Error: onRevealFile called with empty filePath")
		return
	}

	err := platform.OpenFileInManager(filePath)
	if err != nil {
		log.Printf("Error revealing file %s: %v", filePath, err)
		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error()), ui.window.Canvas())
		return
	}

	log.Printf("File revealed successfully: %s", filePath)
}

// onOpenFile handles opening a converted file with the default application
func (ui *RootUI) onOpenFile(filePath string) {
	if filePath == "" {
		log.Printf("Error: onOpenFile called with empty filePath")
		return
	}

	err := platform.OpenFileWithDefaultApp(filePath)
	if err != nil {
		log.Printf("Error opening file %s: %v", filePath, err)
		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyErrorOpeningFile)+": "+err.Error()), ui.window.Canvas())
		return
	}

	log.Printf("File opened successfully: %s", filePath)
}

// onRemoveTask handles removing a task from the history
func (ui *RootUI) onRemoveTask(taskID string) {
	err := ui.convertSvc.RemoveTask(taskID)
	if err != nil {
		log.Printf("Error removing task %s: %v", taskID, err)
		widget.ShowPopUp(widget.NewLabel(ui.localization.GetText(KeyErrorRemovingTask)+": "+err.Error()), ui.window.Canvas())
		return
	}

	ui.historyTasks = ui.convertSvc.GetAllTasks()
	ui.historyList.Refresh()
}

// onTaskUpdate handles task updates from the conversion service
func (ui *RootUI) onTaskUpdate(task *model.ConversionTask) {
	// Snapshot fields before the async UI update; the task goroutine keeps mutating them
	status := task.Status
	lastError := task.LastError

	log.Printf("Task update received: id=%s status=%s output=%s", task.ID, status, task.OutputPath)

	switch status {
	case model.TaskStatusVerifying:
		ui.showNotification(ui.localization.GetText(KeyVerifying), true)
	case model.TaskStatusUploading:
		ui.showNotification(ui.localization.GetText(KeyUploading), true)
	case model.TaskStatusCompleted:
		ui.hideNotification()
		ui.sendCompletionNotification(task)

		// Auto-reveal if enabled
		if ui.settings.GetAutoReveal() && task.OutputPath != "" {
			log.Printf("Auto-revealing completed task %s: %s", task.ID, task.OutputPath)
			ui.onRevealFile(task.OutputPath)
		}
	case model.TaskStatusError:
		message := ui.localization.GetText(KeyConversionFailed)
		if lastError != "" {
			message += ": " + lastError
		}
		ui.showNotification(message, false)
	}

	// Refresh the history and buttons in the UI thread
	fyne.Do(func() {
		ui.historyTasks = ui.convertSvc.GetAllTasks()
		ui.historyList.Refresh()
		ui.updateConvertButton()
	})
}

// onVerifyStateChange handles verification state updates
func (ui *RootUI) onVerifyStateChange(state verify.State) {
	log.Printf("Verification state changed: %s", state)

	fyne.Do(func() {
		ui.applyVerifyState(state)
		ui.updateConvertButton()
	})
}

// applyVerifyState reflects the verification state in the status row
func (ui *RootUI) applyVerifyState(state verify.State) {
	if ui.verifyStatusLabel == nil || ui.verifyRetryBtn == nil {
		return
	}

	switch state {
	case verify.StateNotConfigured:
		ui.verifyStatusLabel.Importance = widget.WarningImportance
		ui.verifyStatusLabel.SetText(ui.localization.GetText(KeyVerifyNotConfigured))
		ui.verifyRetryBtn.Hide()
	case verify.StateLoading:
		ui.verifyStatusLabel.Importance = widget.MediumImportance
		ui.verifyStatusLabel.SetText(ui.localization.GetText(KeyVerifyLoading))
		ui.verifyRetryBtn.Hide()
	case verify.StateReady:
		ui.verifyStatusLabel.Importance = widget.SuccessImportance
		ui.verifyStatusLabel.SetText(ui.localization.GetText(KeyVerifyReady))
		ui.verifyRetryBtn.Hide()
	case verify.StateFailed:
		ui.verifyStatusLabel.Importance = widget.DangerImportance
		ui.verifyStatusLabel.SetText(ui.localization.GetText(KeyVerifyFailed))
		ui.verifyRetryBtn.Show()
	}
}

// onRetryVerification restarts the verification handshake
func (ui *RootUI) onRetryVerification() {
	go func() {
		if err := ui.verifier.Load(context.Background()); err != nil {
			log.Printf("Verification retry failed: %v", err)
		}
	}()
}

// sendCompletionNotification sends a system notification for completed conversions
func (ui *RootUI) sendCompletionNotification(task *model.ConversionTask) {
	if task.Status != model.TaskStatusCompleted {
		return
	}

	title := ui.localization.GetText(KeyConversionCompleted)
	message := task.SavedFileName()

	// Use Fyne's SendNotification
	fyne.CurrentApp().SendNotification(&fyne.Notification{
		Title:   title,
		Content: message,
	})

	// Show in-app toast notification with action buttons
	ui.showToastNotification(task)
}

// showToastNotification shows an in-app toast notification with action buttons
func (ui *RootUI) showToastNotification(task *model.ConversionTask) {
	fyne.Do(func() {
		// Create notification content
		titleLabel := widget.NewLabel(ui.localization.GetText(KeyConversionCompleted))
		titleLabel.TextStyle = fyne.TextStyle{Bold: true}

		messageLabel := widget.NewLabel(task.SavedFileName())
		messageLabel.Truncation = fyne.TextTruncateEllipsis

		// Create action buttons
		revealBtn := widget.NewButton(ui.localization.GetText(KeyReveal), func() {
			if task.OutputPath != "" {
				ui.onRevealFile(task.OutputPath)
			}
		})
		revealBtn.Importance = widget.HighImportance

		openBtn := widget.NewButton(ui.localization.GetText(KeyOpen), func() {
			if task.OutputPath != "" {
				ui.onOpenFile(task.OutputPath)
			}
		})
		openBtn.Importance = widget.MediumImportance

		// Create close button
		var toastPopup *widget.PopUp
		closeBtn := widget.NewButton(IconClose, func() {
			if toastPopup != nil {
				toastPopup.Hide()
			}
		})
		closeBtn.Importance = widget.LowImportance

		// Layout the toast content
		header := container.NewBorder(nil, nil, titleLabel, closeBtn)
		actions := container.NewHBox(revealBtn, openBtn)
		content := container.NewVBox(
			header,
			messageLabel,
			actions,
		)

		// A plain popup keeps the rest of the window interactive
		toastPopup = widget.NewPopUp(content, ui.window.Canvas())

		// Position in top-right corner
		canvasSize := ui.window.Canvas().Size()
		toastSize := fyne.NewSize(ToastWidth, ToastHeight)
		toastPos := fyne.NewPos(canvasSize.Width-toastSize.Width-ToastMargin, ToastMargin)

		toastPopup.Resize(toastSize)
		toastPopup.Move(toastPos)
		toastPopup.Show()

		// Auto-hide after configured time
		go func() {
			time.Sleep(ToastAutoHide)
			fyne.Do(func() {
				toastPopup.Hide()
			})
		}()
	})
}

// NewConfigErrorUI fills the window with a configuration error message.
// Shown instead of the main UI when the application cannot start.
func NewConfigErrorUI(window fyne.Window, err error) {
	title := widget.NewLabel("ImgShift")
	title.TextStyle = fyne.TextStyle{Bold: true}

	message := widget.NewLabel("Configuration error: " + err.Error())
	message.Wrapping = fyne.TextWrapWord

	window.SetTitle("ImgShift")
	window.SetContent(container.NewPadded(container.NewVBox(title, message)))
}
