package ui

// Package ui contains the Fyne-based desktop user interface for the
// application. It wires user interactions to the conversion service and
// renders the image preview, verification status, history, notifications,
// and settings. All UI strings are localized via Localization.
