package io

import (
	"path/filepath"
	"strings"

	tocerr "github.com/matzehuels/tocview/pkg/errors"
)

// Format is a diagram encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// Formats lists the supported encodings in a stable order.
var Formats = []Format{FormatJSON, FormatYAML, FormatTOML}

var extensions = map[string]Format{
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".toml": FormatTOML,
}

// ParseFormat converts a format name ("json", "yaml", "yml", "toml") into a
// Format. Matching is case-insensitive.
func ParseFormat(s string) (Format, error) {
	if f, ok := extensions["."+strings.ToLower(s)]; ok {
		return f, nil
	}
	return "", tocerr.New(tocerr.ErrCodeInvalidFormat, "unknown diagram format: %q", s)
}

// FormatFromPath picks a Format from the extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := extensions[ext]; ok {
		return f, nil
	}
	return "", tocerr.New(tocerr.ErrCodeInvalidFormat, "cannot infer diagram format from %q (want .json, .yaml, .yml or .toml)", path)
}

// Ext returns the canonical file extension for f, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}
