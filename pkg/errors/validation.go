package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// OutputFormats lists the raster formats an export can be written in, keyed by
// lowercase file extension without the dot.
var OutputFormats = map[string]string{
	"png":  "png",
	"jpg":  "jpeg",
	"jpeg": "jpeg",
	"gif":  "gif",
}

// ValidateOutputPath validates the destination of an export.
//
// Validation rules:
//   - Path cannot be empty
//   - No null bytes or control characters
//   - The extension must name a supported raster format (png, jpg, jpeg, gif)
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "output path contains invalid characters")
		}
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if _, ok := OutputFormats[ext]; !ok {
		return New(ErrCodeInvalidFormat, "unsupported output format %q (must be png, jpg or gif)", filepath.Ext(path))
	}

	return nil
}

// ValidateLayoutSpec performs a cheap sanity check on a layout descriptor
// received from an untrusted surface (HTTP, project files) before it is parsed.
// It rejects oversized strings and characters that can never appear in the
// grammar, so parse errors stay meaningful.
func ValidateLayoutSpec(spec string) error {
	if spec == "" {
		return New(ErrCodeInvalidLayout, "layout cannot be empty")
	}

	const maxSpecLength = 64
	if len(spec) > maxSpecLength {
		return New(ErrCodeInvalidLayout, "layout too long (max %d characters)", maxSpecLength)
	}

	for _, r := range spec {
		switch {
		case unicode.IsDigit(r), unicode.IsLetter(r):
		case r == '/', r == ':', r == '-', r == ' ':
		default:
			return New(ErrCodeInvalidLayout, "layout contains invalid character %q", r)
		}
	}

	return nil
}
