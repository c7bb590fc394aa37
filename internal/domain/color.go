package domain

import (
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var hexColorPattern = regexp.MustCompile(`^(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// NormalizeColor canonicalizes a user-supplied color value: whitespace is
// stripped, a leading '#' is added when absent, and the remainder must be
// exactly 3 or 6 hex digits. Returns a ValidationError for anything else.
func NormalizeColor(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	hex := strings.TrimPrefix(trimmed, "#")

	if err := validation.Validate(hex,
		validation.Required,
		validation.Match(hexColorPattern),
	); err != nil {
		return "", &ValidationError{
			Field:   "color",
			Message: fmt.Sprintf("%q is not a valid color (expected 3 or 6 hex digits, e.g. #FF00FF)", value),
		}
	}

	return "#" + hex, nil
}
