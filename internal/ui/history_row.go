package ui

import (
	"fmt"
	"image/color"
	"log"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/imgshift/imgshift/internal/model"
)

// File size formatting constants
const (
	FileSizeUnit  = 1024
	FileSizeUnits = "KMGTPE"
)

// formatFileSize formats file size in bytes to human readable format
func formatFileSize(bytes int64) string {
	if bytes < FileSizeUnit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(FileSizeUnit), 0
	for n := bytes / FileSizeUnit; n >= FileSizeUnit; n /= FileSizeUnit {
		div *= FileSizeUnit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), FileSizeUnits[exp])
}

// HistoryRow represents a compact conversion history row widget
type HistoryRow struct {
	widget.BaseWidget

	task         *model.ConversionTask
	localization *Localization

	// UI components
	nameLabel   *widget.Label
	detailLabel *widget.Label
	statusLabel *widget.Label

	// Action buttons
	revealBtn *widget.Button
	openBtn   *widget.Button
	removeBtn *widget.Button

	// Callbacks
	onReveal func(filePath string)
	onOpen   func(filePath string)
	onRemove func(taskID string)
}

// NewHistoryRow creates a new history row widget
func NewHistoryRow(task *model.ConversionTask, localization *Localization) *HistoryRow {
	if task == nil {
		log.Printf("Warning: NewHistoryRow called with nil task")
		task = &model.ConversionTask{
			ID:     "dummy",
			Status: model.TaskStatusPending,
		}
	}

	hr := &HistoryRow{
		task:         task,
		localization: localization,
	}
	hr.ExtendBaseWidget(hr)
	hr.createUI()
	hr.updateFromTask()
	return hr
}

// SetCallbacks sets the action callbacks
func (hr *HistoryRow) SetCallbacks(
	onReveal func(filePath string),
	onOpen func(filePath string),
	onRemove func(taskID string),
) {
	if onReveal == nil {
		log.Printf("Warning: onReveal callback is nil for task %s", hr.task.ID)
	}
	if onOpen == nil {
		log.Printf("Warning: onOpen callback is nil for task %s", hr.task.ID)
	}
	if onRemove == nil {
		log.Printf("Warning: onRemove callback is nil for task %s", hr.task.ID)
	}

	hr.onReveal = onReveal
	hr.onOpen = onOpen
	hr.onRemove = onRemove
}

// UpdateTask updates the row with new task data
func (hr *HistoryRow) UpdateTask(task *model.ConversionTask) {
	if task == nil {
		log.Printf("Warning: UpdateTask called with nil task for existing task %s", hr.task.ID)
		return
	}

	hr.task = task
	hr.updateFromTask()
	hr.Refresh()
}

// createUI creates the UI components
func (hr *HistoryRow) createUI() {
	hr.nameLabel = widget.NewLabel("")
	hr.nameLabel.TextStyle = fyne.TextStyle{Bold: true}
	hr.nameLabel.Truncation = fyne.TextTruncateEllipsis
	hr.nameLabel.Alignment = fyne.TextAlignLeading

	hr.detailLabel = widget.NewLabel("")
	hr.detailLabel.Truncation = fyne.TextTruncateEllipsis
	hr.detailLabel.Alignment = fyne.TextAlignLeading

	hr.statusLabel = widget.NewLabel("")
	hr.statusLabel.Alignment = fyne.TextAlignTrailing

	hr.revealBtn = widget.NewButton(hr.localization.GetText(KeyReveal), func() {
		currentTask := hr.task
		if hr.onReveal == nil {
			log.Printf("onReveal callback is nil for task %s", currentTask.ID)
			return
		}
		if currentTask.OutputPath == "" {
			return
		}
		hr.onReveal(currentTask.OutputPath)
	})
	hr.revealBtn.Importance = widget.MediumImportance

	hr.openBtn = widget.NewButton(hr.localization.GetText(KeyOpen), func() {
		currentTask := hr.task
		if hr.onOpen == nil {
			log.Printf("onOpen callback is nil for task %s", currentTask.ID)
			return
		}
		if currentTask.OutputPath == "" {
			return
		}
		hr.onOpen(currentTask.OutputPath)
	})
	hr.openBtn.Importance = widget.MediumImportance

	hr.removeBtn = widget.NewButton(IconClose, func() {
		currentTask := hr.task
		if hr.onRemove == nil {
			log.Printf("onRemove callback is nil for task %s", currentTask.ID)
			return
		}
		hr.onRemove(currentTask.ID)
	})
	hr.removeBtn.Importance = widget.LowImportance
}

// updateFromTask updates UI components based on task state
func (hr *HistoryRow) updateFromTask() {
	if hr.task == nil {
		log.Printf("Warning: updateFromTask called with nil task")
		return
	}

	hr.nameLabel.SetText(hr.task.GetDisplayTitle())
	hr.detailLabel.SetText(hr.buildDetailText())

	// Update status label color and text
	switch hr.task.Status {
	case model.TaskStatusError:
		hr.statusLabel.Importance = widget.DangerImportance
		hr.statusLabel.SetText(IconError + " " + hr.task.Status.String())
	case model.TaskStatusCompleted:
		hr.statusLabel.Importance = widget.SuccessImportance
		hr.statusLabel.SetText(hr.task.Status.String())
	case model.TaskStatusVerifying, model.TaskStatusUploading:
		hr.statusLabel.Importance = widget.HighImportance
		hr.statusLabel.SetText("⏳ " + hr.task.Status.String())
	case model.TaskStatusPending:
		hr.statusLabel.Importance = widget.MediumImportance
		hr.statusLabel.SetText("⏳ " + hr.task.Status.String())
	default:
		hr.statusLabel.Importance = widget.MediumImportance
		hr.statusLabel.SetText(hr.task.Status.String())
	}

	hr.updateButtons()
}

// buildDetailText composes the secondary line: conversion direction, sizes, timing.
func (hr *HistoryRow) buildDetailText() string {
	fromExt := strings.TrimPrefix(strings.ToLower(filepath.Ext(hr.task.SourceName)), ".")
	if fromExt == "" {
		fromExt = DashPlaceholder
	}
	detail := fromExt + FormatArrow + hr.task.Target.String()

	if hr.task.InputSize > 0 {
		detail += MiddleDotSeparator + formatFileSize(hr.task.InputSize)
		if hr.task.OutputSize > 0 {
			detail += FormatArrow + formatFileSize(hr.task.OutputSize)
		}
	}

	if hr.task.Status == model.TaskStatusCompleted {
		if elapsed := hr.task.Elapsed(); elapsed > 0 {
			detail += MiddleDotSeparator + fmt.Sprintf("%.1fs", elapsed.Seconds())
		}
	}

	if hr.task.Status == model.TaskStatusError && hr.task.LastError != "" {
		detail += MiddleDotSeparator + hr.task.LastError
	}

	return detail
}

// updateButtons updates button states based on task status
func (hr *HistoryRow) updateButtons() {
	if hr.task == nil {
		log.Printf("Warning: updateButtons called with nil task")
		return
	}

	// Reveal and Open need a saved output file
	if hr.task.Status == model.TaskStatusCompleted && hr.task.OutputPath != "" {
		hr.revealBtn.Enable()
		hr.openBtn.Enable()
	} else {
		hr.revealBtn.Disable()
		hr.openBtn.Disable()
	}

	// Remove is blocked while the task is still running
	if hr.task.Status.IsActive() {
		hr.removeBtn.Disable()
	} else {
		hr.removeBtn.Enable()
	}
}

// CreateRenderer creates the widget renderer
func (hr *HistoryRow) CreateRenderer() fyne.WidgetRenderer {
	return &historyRowRenderer{historyRow: hr}
}

// historyRowRenderer renders the history row widget
type historyRowRenderer struct {
	historyRow *HistoryRow
	layout     *fyne.Container
}

// Layout arranges the components
func (r *historyRowRenderer) Layout(size fyne.Size) {
	if r.layout == nil {
		r.createLayout()
	}
	if r.layout != nil {
		if size.Width < RowMinWidth {
			size.Width = RowMinWidth
		}
		if size.Height < RowMinHeight {
			size.Height = RowMinHeight
		}
		r.layout.Resize(size)
	}
}

// MinSize returns the minimum size
func (r *historyRowRenderer) MinSize() fyne.Size {
	if r.layout != nil {
		return r.layout.MinSize()
	}
	return fyne.NewSize(RowMinWidth, RowMinHeight)
}

// Refresh refreshes the renderer
func (r *historyRowRenderer) Refresh() {
	if r.layout == nil {
		r.createLayout()
	}
	if r.layout != nil {
		r.layout.Refresh()
	}
}

// Objects returns the container objects
func (r *historyRowRenderer) Objects() []fyne.CanvasObject {
	if r.layout == nil {
		r.createLayout()
	}
	return []fyne.CanvasObject{r.layout}
}

// Destroy cleans up the renderer
func (r *historyRowRenderer) Destroy() {}

// createLayout creates the main layout
func (r *historyRowRenderer) createLayout() {
	hr := r.historyRow

	// Left side: file name on top, conversion details below
	leftSide := container.NewVBox(hr.nameLabel, hr.detailLabel)

	// Helper to fix width using a transparent rectangle underneath
	fixedWidth := func(w float32, obj fyne.CanvasObject) fyne.CanvasObject {
		spacer := canvas.NewRectangle(color.RGBA{0, 0, 0, 0})
		spacer.SetMinSize(fyne.NewSize(w, obj.MinSize().Height))
		return container.NewStack(spacer, obj)
	}

	actionRow := container.NewHBox(
		hr.revealBtn,
		hr.openBtn,
		hr.removeBtn,
	)

	separator := widget.NewSeparator()

	// Border layout keeps the action buttons flush to the row's right edge
	// with the status pinned next to them and the name taking the rest.
	rightCluster := container.NewBorder(nil, nil, nil, actionRow,
		fixedWidth(StatusLabelWidth, hr.statusLabel))

	mainContent := container.NewBorder(nil, nil, nil, rightCluster, leftSide)

	r.layout = container.NewVBox(
		mainContent,
		separator,
	)

	r.layout.Resize(fyne.NewSize(RowMinWidth, RowDefaultH))
}
