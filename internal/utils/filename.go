package utils

import (
	"path/filepath"
	"strings"
)

// SanitizeFilename strips an uploaded filename down to a form that is safe
// to join into a filesystem path: the base name only, with every character
// outside [A-Za-z0-9._-] replaced by an underscore. Leading dots are also
// replaced so the result can never be a hidden file or a relative
// traversal component.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '_' || r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	cleaned := strings.TrimLeft(b.String(), ".")
	if cleaned == "" {
		cleaned = "file"
	}

	return cleaned
}

// FileExtension returns the lowercased extension of name without the
// leading dot, or an empty string if name has no extension.
func FileExtension(name string) string {
	ext := filepath.Ext(name)
	if ext == "" {
		return ""
	}

	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
