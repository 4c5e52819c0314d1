package convert

import (
	"mime"
	"strings"
	"unicode"

	"github.com/imgshift/imgshift/internal/model"
)

// ResolveFilename extracts the suggested file name from a
// Content-Disposition header. Both quoted and unquoted filename values are
// accepted, the name is sanitized against path smuggling, and when nothing
// usable remains the fallback is "converted.<target>".
func ResolveFilename(disposition string, target model.Format) string {
	if name := sanitizeFilename(dispositionFilename(disposition)); name != "" {
		return name
	}
	return target.DefaultFileName()
}

// dispositionFilename pulls the filename parameter out of the header
// value. Malformed headers that mime.ParseMediaType rejects are given a
// second chance with a plain token scan, since some services emit the
// parameter without a disposition type.
func dispositionFilename(disposition string) string {
	if disposition == "" {
		return ""
	}

	if _, params, err := mime.ParseMediaType(disposition); err == nil {
		if name := params["filename"]; name != "" {
			return name
		}
	}

	for _, part := range strings.Split(disposition, ";") {
		part = strings.TrimSpace(part)
		if len(part) < len("filename=") || !strings.EqualFold(part[:len("filename=")], "filename=") {
			continue
		}
		value := strings.TrimSpace(part[len("filename="):])
		return strings.Trim(value, `"`)
	}
	return ""
}

// sanitizeFilename reduces a server-supplied name to a bare file name
// safe to create locally. Path separators and control characters are
// stripped; names that reduce to nothing are rejected.
func sanitizeFilename(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}

	// Keep only the last path segment, accepting both separator styles.
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}

	var b strings.Builder
	for _, r := range name {
		if unicode.IsControl(r) {
			continue
		}
		b.WriteRune(r)
	}
	name = strings.TrimSpace(b.String())

	if name == "" || name == "." || name == ".." {
		return ""
	}
	return name
}
