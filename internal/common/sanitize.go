package common

import (
	"path/filepath"
	"strings"
)

// SanitizeFilename reduces a user-supplied filename to a safe basename:
// path components are stripped, whitespace becomes underscores, and any
// character outside [A-Za-z0-9._-] is dropped. Returns "" when nothing
// safe remains, which callers must treat as an invalid filename.
func SanitizeFilename(name string) string {
	// Normalize separators before taking the base so "a\b/c.txt" cannot
	// smuggle a path on any platform.
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		case r == ' ' || r == '\t':
			b.WriteRune('_')
		}
	}

	cleaned := strings.Trim(b.String(), "._-")
	if cleaned == "" || cleaned == "." || cleaned == ".." {
		return ""
	}
	return cleaned
}

// FileExtension returns the lower-cased extension of a filename,
// including the leading dot ("" when the name has no extension).
func FileExtension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}
