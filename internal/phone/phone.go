// Package phone validates and canonicalizes phone numbers against the
// country selected by the user.
package phone

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// ErrInvalid is returned when a number does not parse or is not valid for
// the selected country.
var ErrInvalid = errors.New("invalid phone number for the selected country")

// Normalize validates number against the ISO alpha-2 country code and
// returns its E.164 form, the canonical representation stored in the
// database and used for uniqueness.
func Normalize(number, country string) (string, error) {
	parsed, err := phonenumbers.Parse(number, strings.ToUpper(strings.TrimSpace(country)))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", ErrInvalid
	}
	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}
