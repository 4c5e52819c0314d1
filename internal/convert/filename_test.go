package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/imgshift/imgshift/internal/model"
)

func TestResolveFilename(t *testing.T) {
	tests := []struct {
		name        string
		disposition string
		target      model.Format
		expected    string
	}{
		{
			name:        "quoted filename",
			disposition: `attachment; filename="photo.webp"`,
			target:      model.FormatWebP,
			expected:    "photo.webp",
		},
		{
			name:        "unquoted filename",
			disposition: `attachment; filename=photo.webp`,
			target:      model.FormatWebP,
			expected:    "photo.webp",
		},
		{
			name:        "quoted filename with spaces",
			disposition: `attachment; filename="my photo.png"`,
			target:      model.FormatPNG,
			expected:    "my photo.png",
		},
		{
			name:        "uppercase parameter name",
			disposition: `attachment; FILENAME="shouty.gif"`,
			target:      model.FormatGIF,
			expected:    "shouty.gif",
		},
		{
			name:        "filename parameter without disposition type",
			disposition: `filename=loose.jpeg`,
			target:      model.FormatJPEG,
			expected:    "loose.jpeg",
		},
		{
			name:        "missing header",
			disposition: "",
			target:      model.FormatWebP,
			expected:    "converted.webp",
		},
		{
			name:        "header without filename parameter",
			disposition: "attachment",
			target:      model.FormatICO,
			expected:    "converted.ico",
		},
		{
			name:        "empty quoted filename",
			disposition: `attachment; filename=""`,
			target:      model.FormatPNG,
			expected:    "converted.png",
		},
		{
			name:        "path smuggling is reduced to the base name",
			disposition: `attachment; filename="../../etc/passwd"`,
			target:      model.FormatWebP,
			expected:    "passwd",
		},
		{
			name:        "windows style path is reduced to the base name",
			disposition: `attachment; filename=C:\Users\x\evil.png`,
			target:      model.FormatPNG,
			expected:    "evil.png",
		},
		{
			name:        "dot dot only name falls back",
			disposition: `attachment; filename=".."`,
			target:      model.FormatGIF,
			expected:    "converted.gif",
		},
		{
			name:        "control characters are stripped",
			disposition: "attachment; filename=\"bad\x01name.webp\"",
			target:      model.FormatWebP,
			expected:    "badname.webp",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, ResolveFilename(test.disposition, test.target))
		})
	}
}

func TestResolveFilenameFallbackCoversAllFormats(t *testing.T) {
	expected := map[model.Format]string{
		model.FormatWebP: "converted.webp",
		model.FormatJPEG: "converted.jpeg",
		model.FormatPNG:  "converted.png",
		model.FormatGIF:  "converted.gif",
		model.FormatICO:  "converted.ico",
	}

	for target, want := range expected {
		assert.Equal(t, want, ResolveFilename("", target))
	}
}
