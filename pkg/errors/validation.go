package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// roleRegex matches logical cell role names such as "gpio", "fill20" or "ram".
var roleRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidateRole validates a logical cell role name.
func ValidateRole(role string) error {
	if role == "" {
		return New(ErrCodeInvalidConfig, "cell role cannot be empty")
	}
	if len(role) > 64 {
		return New(ErrCodeInvalidConfig, "cell role too long (max 64 characters)")
	}
	if !roleRegex.MatchString(role) {
		return New(ErrCodeInvalidConfig, "invalid cell role: %q", role)
	}
	return nil
}

// ValidateName validates an instance, pin or layer name before it reaches
// an exchange format. Names may contain hierarchy separators and bus
// brackets but no whitespace, control characters or DEF statement
// delimiters.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No whitespace or control characters
//   - No ';', '(' or ')' (DEF statement syntax)
//   - Maximum length of 256 characters
func ValidateName(kind, name string) error {
	if name == "" {
		return New(ErrCodeInvalidConfig, "%s name cannot be empty", kind)
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidConfig, "%s name too long (max 256 characters)", kind)
	}

	for _, r := range name {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidConfig, "%s name %q contains whitespace or control characters", kind, name)
		}
	}

	if strings.ContainsAny(name, ";()") {
		return New(ErrCodeInvalidConfig, "%s name %q contains invalid characters", kind, name)
	}

	return nil
}

// ValidatePath validates a relative file path referenced from a config file.
// It prevents path traversal and ensures reasonable path length.
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidConfig, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidConfig, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidConfig, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidConfig, "path cannot contain path traversal sequences (..)")
	}

	return nil
}
