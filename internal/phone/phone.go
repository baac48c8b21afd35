// Package phone normalizes client phone numbers before lookups.
package phone

import (
	"regexp"
	"strings"

	"salesdrive/internal/apierr"
)

var (
	formatting = strings.NewReplacer(" ", "", "-", "", "+", "", "(", "", ")", "", ".", "")
	digits     = regexp.MustCompile(`^\d{7,15}$`)
	uaLocal    = regexp.MustCompile(`^0\d{9}$`)
)

// Normalize strips formatting and expands Ukrainian local numbers
// (0XXXXXXXXX) to the international 380XXXXXXXXX form.
func Normalize(phone string) (string, error) {
	normalized := formatting.Replace(strings.TrimSpace(phone))

	if uaLocal.MatchString(normalized) {
		normalized = "38" + normalized
	}
	if !digits.MatchString(normalized) {
		return "", apierr.InvalidArgument("invalid phone number %q", phone)
	}
	return normalized, nil
}
