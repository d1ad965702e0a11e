package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxSourceBytes bounds the size of a diagram source accepted by the CLI and
// the HTTP service. The core pipeline itself does not enforce it.
const MaxSourceBytes = 1 << 20

// kindNameRegex matches format and diagram kind names ("mermaid", "plantuml").
var kindNameRegex = regexp.MustCompile(`^[a-z][a-z0-9-]*$`)

// ValidateKindName validates a user-supplied format or diagram kind name.
// Names are lowercase identifiers; the check is syntactic only, whether the
// kind is supported is decided by the pipeline.
func ValidateKindName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidKind, "kind cannot be empty")
	}
	if len(name) > 32 {
		return New(ErrCodeInvalidKind, "kind too long (max 32 characters)")
	}
	if !kindNameRegex.MatchString(name) {
		return New(ErrCodeInvalidKind, "invalid kind: %q", name)
	}
	return nil
}

// ValidateSource validates diagram source text received from outside the
// process. It rejects empty input, input larger than MaxSourceBytes and
// input containing null bytes.
func ValidateSource(src string) error {
	if strings.TrimSpace(src) == "" {
		return New(ErrCodeInvalidSource, "source cannot be empty")
	}
	if len(src) > MaxSourceBytes {
		return New(ErrCodeInvalidSource, "source too large (max %d bytes)", MaxSourceBytes)
	}
	if strings.ContainsRune(src, '\x00') {
		return New(ErrCodeInvalidSource, "source contains null bytes")
	}
	return nil
}

// ValidatePath validates an output file path.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}
