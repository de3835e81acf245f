package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateFramePrefix validates the filename prefix used for intermediate frames.
// Frames are written as <dir>/<prefix><NNN>.jpeg, so the prefix must be a plain
// basename fragment.
//
// The validation rules are intentionally conservative:
//   - No empty prefixes
//   - No control characters or null bytes
//   - No path separators
//   - No '%' (the movie encoder turns the prefix into a printf-style pattern)
//   - Maximum length of 128 characters
func ValidateFramePrefix(prefix string) error {
	if prefix == "" {
		return New(ErrCodeInvalidInput, "frame prefix cannot be empty")
	}

	if len(prefix) > 128 {
		return New(ErrCodeInvalidInput, "frame prefix too long (max 128 characters)")
	}

	for _, r := range prefix {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "frame prefix contains invalid control characters")
		}
	}

	for _, pattern := range []string{"/", "\\", "%"} {
		if strings.Contains(prefix, pattern) {
			return New(ErrCodeInvalidInput, "frame prefix contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateOutputPath validates a user supplied output file path.
// Absolute and relative paths are both allowed; the path only has to name a
// file with an extension.
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasSuffix(path, "/") {
		return New(ErrCodeInvalidPath, "output path must name a file, got directory %q", path)
	}

	return nil
}

// colormapNameRegex matches colormap identifiers such as "viridis" or "jet".
var colormapNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// ValidateColormapName checks that name is a syntactically valid colormap identifier.
// Whether the colormap exists is decided by the colormap package.
func ValidateColormapName(name string) error {
	if !colormapNameRegex.MatchString(name) {
		return New(ErrCodeInvalidColormap, "invalid colormap name: %q", name)
	}
	return nil
}
