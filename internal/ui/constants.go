package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconImage    = "🖼"
	IconFolder   = "📁"
	IconFile     = "📄"
	IconClose    = "×"
	IconError    = "❌"
	IconLanguage = "🌐"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
	FormatArrow        = " → "
)

// Layout sizing (HistoryRow / lists / preview)
const (
	StatusLabelWidth float32 = 96
	SizeLabelWidth   float32 = 88

	RowMinWidth  float32 = 360
	RowMinHeight float32 = 72
	RowDefaultH  float32 = 64

	PreviewMinWidth  float32 = 280
	PreviewMinHeight float32 = 240
)

// Toast notification sizing and behavior
const (
	ToastWidth    float32 = 300
	ToastHeight   float32 = 120
	ToastMargin   float32 = 20
	ToastAutoHide         = 5 * time.Second
)
