package errors

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidateHexColor checks that s has the form #RRGGBB.
func ValidateHexColor(s string) error {
	if s == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if !hexColorRegex.MatchString(s) {
		return New(ErrCodeInvalidColor, "color must have the form #RRGGBB").WithSubject(s)
	}
	return nil
}

// ValidateOutputPath validates a file path the exporters are about to write.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - Must not name an existing directory separator-only path ("/", ".")
//   - Must carry the wanted extension when ext is non-empty (case-insensitive)
func ValidateOutputPath(path, ext string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters").WithSubject(path)
		}
	}

	base := filepath.Base(filepath.Clean(path))
	if base == "." || base == string(filepath.Separator) {
		return New(ErrCodeInvalidPath, "output path must name a file").WithSubject(path)
	}

	if ext != "" && !strings.EqualFold(filepath.Ext(path), ext) {
		return New(ErrCodeInvalidPath, "output path must end in %s", ext).WithSubject(path)
	}

	return nil
}

// SanitizeFileName turns a display name into a safe file-name stem: it is
// lower-cased, path separators and whitespace become underscores, and
// control characters are dropped. An empty result becomes "card".
func SanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r == '/' || r == '\\' || unicode.IsSpace(r):
			b.WriteRune('_')
		case r == ':' || r == '*' || r == '?' || r == '"' || r == '<' || r == '>' || r == '|':
			b.WriteRune('_')
		case unicode.IsControl(r):
		default:
			b.WriteRune(r)
		}
	}
	out := strings.Trim(b.String(), ".")
	if out == "" {
		return "card"
	}
	return out
}
