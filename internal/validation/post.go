package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"azeyco/internal/models"
)

// ValidatePostContent trims content and checks its rune length. Emptiness is
// checked by the caller, which owns the required-content rule.
func ValidatePostContent(content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if utf8.RuneCountInString(trimmed) > models.MaxContentLength {
		return "", fmt.Errorf("content must not exceed %d characters", models.MaxContentLength)
	}
	return trimmed, nil
}

// ValidateVisibility checks a post visibility value.
func ValidateVisibility(visibility string) error {
	if !models.IsValidVisibility(visibility) {
		return fmt.Errorf("visibility must be one of: public, followers, private")
	}
	return nil
}
