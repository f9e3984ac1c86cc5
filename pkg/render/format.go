package render

import (
	"strings"

	"github.com/matzehuels/collage/pkg/errors"
)

// Output formats.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatJSON     = "json"
	FormatTerminal = "term"
)

// Formats lists every output format in display order.
func Formats() []string {
	return []string{FormatSVG, FormatPNG, FormatJSON, FormatTerminal}
}

// ParseFormat normalizes a format name. "terminal" and "txt" are accepted
// for FormatTerminal.
func ParseFormat(name string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(name)); f {
	case FormatSVG, FormatPNG, FormatJSON, FormatTerminal:
		return f, nil
	case "terminal", "txt":
		return FormatTerminal, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unknown format %q (valid: %s)", name, strings.Join(Formats(), ", "))
}

// Extension returns the file extension written for format.
func Extension(format string) string {
	if format == FormatTerminal {
		return "txt"
	}
	return format
}

// ContentType returns the MIME type served for format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatJSON:
		return "application/json"
	}
	return "text/plain; charset=utf-8"
}
