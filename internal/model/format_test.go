package model

import "testing"

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"webp", FormatWebP, false},
		{"jpeg", FormatJPEG, false},
		{"png", FormatPNG, false},
		{"gif", FormatGIF, false},
		{"ico", FormatICO, false},
		{"jpg", FormatJPEG, false},
		{"WEBP", FormatWebP, false},
		{"  png  ", FormatPNG, false},
		{"tiff", "", true},
		{"", "", true},
		{"png; rm -rf /", "", true},
	}

	for _, test := range tests {
		result, err := ParseFormat(test.input)
		if test.wantErr {
			if err == nil {
				t.Errorf("ParseFormat(%q) expected error, got %q", test.input, result)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseFormat(%q) unexpected error: %v", test.input, err)
			continue
		}
		if result != test.expected {
			t.Errorf("ParseFormat(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestFormat_DefaultFileName(t *testing.T) {
	tests := []struct {
		format   Format
		expected string
	}{
		{FormatWebP, "converted.webp"},
		{FormatJPEG, "converted.jpeg"},
		{FormatPNG, "converted.png"},
		{FormatGIF, "converted.gif"},
		{FormatICO, "converted.ico"},
	}

	for _, test := range tests {
		result := test.format.DefaultFileName()
		if result != test.expected {
			t.Errorf("Format(%s).DefaultFileName() = %s, expected %s", test.format, result, test.expected)
		}
	}
}

func TestFormat_MIME(t *testing.T) {
	tests := []struct {
		format   Format
		expected string
	}{
		{FormatWebP, "image/webp"},
		{FormatJPEG, "image/jpeg"},
		{FormatPNG, "image/png"},
		{FormatGIF, "image/gif"},
		{FormatICO, "image/x-icon"},
		{Format("bogus"), "application/octet-stream"},
	}

	for _, test := range tests {
		result := test.format.MIME()
		if result != test.expected {
			t.Errorf("Format(%s).MIME() = %s, expected %s", test.format, result, test.expected)
		}
	}
}

func TestFormat_Valid(t *testing.T) {
	for _, f := range Formats() {
		if !f.Valid() {
			t.Errorf("Format(%s).Valid() = false, expected true", f)
		}
	}

	for _, f := range []Format{"", "bmp", "WEBP", "jpg"} {
		if f.Valid() {
			t.Errorf("Format(%s).Valid() = true, expected false", f)
		}
	}
}

func TestFormats(t *testing.T) {
	formats := Formats()
	if len(formats) != 5 {
		t.Fatalf("Expected 5 supported formats, got %d", len(formats))
	}

	names := FormatNames()
	if len(names) != len(formats) {
		t.Fatalf("Expected %d format names, got %d", len(formats), len(names))
	}
	for i, f := range formats {
		if names[i] != f.String() {
			t.Errorf("FormatNames()[%d] = %s, expected %s", i, names[i], f.String())
		}
	}
}
