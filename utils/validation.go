package utils

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const maxResourceNameLength = 255

// ValidateResourceName checks a folder or file name after trimming
// surrounding whitespace and returns the trimmed name.
func ValidateResourceName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", fmt.Errorf("name cannot be empty: %w", ErrInvalidArgument)
	}
	if utf8.RuneCountInString(trimmed) > maxResourceNameLength {
		return "", fmt.Errorf("name too long (max %d characters): %w", maxResourceNameLength, ErrInvalidArgument)
	}
	if !utf8.ValidString(trimmed) {
		return "", fmt.Errorf("name contains invalid UTF-8: %w", ErrInvalidArgument)
	}
	if strings.ContainsRune(trimmed, '\x00') {
		return "", fmt.Errorf("name contains invalid character: %w", ErrInvalidArgument)
	}
	return trimmed, nil
}
