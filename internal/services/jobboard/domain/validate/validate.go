// Package validate holds field checks shared by the domain packages.
package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var v = validator.New(validator.WithRequiredStructEnabled())

// Email reports whether value is a syntactically valid email address.
func Email(value string) bool {
	return v.Var(value, "required,email") == nil
}

// WebURL reports whether value is an absolute http or https URL.
func WebURL(value string) bool {
	return v.Var(value, "required,http_url") == nil
}

// MinRunes reports whether value has at least n characters.
func MinRunes(value string, n int) bool {
	return utf8.RuneCountInString(value) >= n
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// TrimPtr trims *value in place and returns it; nil stays nil.
func TrimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}
