package model

import (
	"fmt"
	"strings"
)

// Format is the image encoding requested as conversion output.
type Format string

const (
	FormatWebP Format = "webp"
	FormatJPEG Format = "jpeg"
	FormatPNG  Format = "png"
	FormatGIF  Format = "gif"
	FormatICO  Format = "ico"
)

// Formats returns the supported target formats in display order.
func Formats() []Format {
	return []Format{FormatWebP, FormatJPEG, FormatPNG, FormatGIF, FormatICO}
}

// FormatNames returns the supported target formats as plain strings,
// ready for a select widget.
func FormatNames() []string {
	formats := Formats()
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = f.String()
	}
	return names
}

// ParseFormat normalizes user input into a Format. "jpg" is accepted as an
// alias for "jpeg"; anything outside the supported set is an error.
func ParseFormat(s string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	if normalized == "jpg" {
		normalized = string(FormatJPEG)
	}

	f := Format(normalized)
	switch f {
	case FormatWebP, FormatJPEG, FormatPNG, FormatGIF, FormatICO:
		return f, nil
	}
	return "", fmt.Errorf("unsupported target format: %q", s)
}

// Valid reports whether f is one of the supported target formats.
func (f Format) Valid() bool {
	switch f {
	case FormatWebP, FormatJPEG, FormatPNG, FormatGIF, FormatICO:
		return true
	}
	return false
}

// String returns the string representation of Format.
func (f Format) String() string {
	return string(f)
}

// DefaultFileName returns the fallback output name used when the server
// response does not suggest one.
func (f Format) DefaultFileName() string {
	return "converted." + string(f)
}

// MIME returns the MIME type for the format.
func (f Format) MIME() string {
	switch f {
	case FormatWebP:
		return "image/webp"
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatGIF:
		return "image/gif"
	case FormatICO:
		return "image/x-icon"
	default:
		return "application/octet-stream"
	}
}
