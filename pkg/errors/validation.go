package errors

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const maxNameLength = 100

// yearRegex matches a 4-digit year, optionally surrounded by whitespace.
var yearRegex = regexp.MustCompile(`^\s*\d{4}\s*$`)

// ParseYear parses a 4-digit year string such as "1990".
// field is used in the returned ValidationError.
func ParseYear(field, s string) (int, error) {
	if !yearRegex.MatchString(s) {
		return 0, Invalid(ErrCodeInvalidYear, field, "%s must be a 4-digit year, got %q", field, s)
	}
	y, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, Invalid(ErrCodeInvalidYear, field, "%s must be a 4-digit year, got %q", field, s)
	}
	return y, nil
}

// ValidateName validates a first name or surname.
//
// The rules are intentionally conservative:
//   - No control characters
//   - Maximum length of 100 characters
//
// Empty names are allowed; required-field policy belongs to the caller.
func ValidateName(field, name string) error {
	if len(name) > maxNameLength {
		return Invalid(ErrCodeInvalidInput, field, "%s too long (max %d characters)", field, maxNameLength)
	}
	for _, r := range name {
		if unicode.IsControl(r) {
			return Invalid(ErrCodeInvalidInput, field, "%s contains invalid control characters", field)
		}
	}
	return nil
}

// ValidateURL validates a photo URL string for safety.
// It ensures the URL has a safe scheme (http or https). Empty is allowed.
func ValidateURL(field, rawURL string) error {
	if rawURL == "" {
		return nil
	}

	// Simple scheme validation without full URL parsing
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return Invalid(ErrCodeInvalidInput, field, "%s must use http or https scheme", field)
	}

	return nil
}
