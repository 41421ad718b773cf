package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// maxNameLength bounds diagram names so they stay usable as file names,
// cache keys and document IDs.
const maxNameLength = 128

var diagramNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateDiagramName validates a diagram name for safety and correctness.
// Names are used as file stems by the directory store and as document IDs
// by the Mongo store, so they are restricted to a conservative alphabet.
//
// The validation rules:
//   - No empty names
//   - Maximum length of 128 characters
//   - No control characters
//   - No path separators or traversal sequences
//   - Letters, digits, '.', '_' and '-' only, starting with a letter or digit
func ValidateDiagramName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "diagram name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "diagram name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "diagram name contains invalid control characters")
		}
	}

	if strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return New(ErrCodeInvalidName, "diagram name cannot contain path components")
	}

	if !diagramNameRegex.MatchString(name) {
		return New(ErrCodeInvalidName, "invalid diagram name: %q", name)
	}

	return nil
}

// ValidateFormat checks that format is one of allowed.
func ValidateFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %s (must be one of %s)", format, strings.Join(allowed, ", "))
}
