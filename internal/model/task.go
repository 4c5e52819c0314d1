package model

import (
	"path/filepath"
	"time"
)

// ConversionTask represents a single conversion submission
type ConversionTask struct {
	ID         string
	SourcePath string // local path of the selected image
	SourceName string // display name of the selected image
	Target     Format
	OutputName string // requested output filename, may be empty
	Status     TaskStatus
	LastError  string // last error message if any
	OutputPath string // path of the saved converted file
	InputSize  int64  // selected file size in bytes
	OutputSize int64  // converted file size in bytes
	StartedAt  time.Time
	FinishedAt time.Time
}

// GetDisplayTitle returns the saved filename, the source name, or the ID
// in order of preference.
func (ct *ConversionTask) GetDisplayTitle() string {
	if ct.OutputPath != "" {
		return filepath.Base(ct.OutputPath)
	}
	if ct.SourceName != "" {
		return ct.SourceName
	}
	return ct.ID
}

// SavedFileName returns the base name of the saved converted file, or ""
// while the task has not completed.
func (ct *ConversionTask) SavedFileName() string {
	if ct.OutputPath == "" {
		return ""
	}
	return filepath.Base(ct.OutputPath)
}

// Elapsed returns the task duration: up to now while in flight, and the
// final duration once finished.
func (ct *ConversionTask) Elapsed() time.Duration {
	if ct.StartedAt.IsZero() {
		return 0
	}
	if ct.FinishedAt.IsZero() {
		return time.Since(ct.StartedAt)
	}
	return ct.FinishedAt.Sub(ct.StartedAt)
}
