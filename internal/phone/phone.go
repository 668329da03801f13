// internal/phone/phone.go
package phone

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// maxDigits caps stored phone input at the E.164 maximum.
const maxDigits = 15

// Digits strips everything but digits from raw and caps the length. Used to
// normalize intake input before storage.
func Digits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if len(s) > maxDigits {
		s = s[:maxDigits]
	}
	return s
}

// Normalizer converts stored phone values into dialable E.164 numbers.
// The policy assumes domestic (US) numbers: a bare 10-digit number gets the
// +1 prefix, an 11-digit number already starting with 1 gets a +, and a value
// that already starts with + is passed through unchanged. Anything else is
// rejected. region only feeds the libphonenumber sanity check.
type Normalizer struct {
	region string
}

func NewNormalizer(region string) *Normalizer {
	if region == "" {
		region = "US"
	}
	return &Normalizer{region: region}
}

// ToE164 normalizes raw into a dialable number or returns an error.
func (n *Normalizer) ToE164(raw string) (string, error) {
	var e164 string

	digits := Digits(raw)
	switch {
	case len(digits) == 10:
		e164 = "+1" + digits
	case len(digits) == 11 && strings.HasPrefix(digits, "1"):
		e164 = "+" + digits
	case strings.HasPrefix(raw, "+"):
		e164 = raw
	default:
		return "", fmt.Errorf("unrecognized phone format: %q", raw)
	}

	// Length-based sanity check only. IsValidNumber would reject numbers the
	// carriers have not assigned yet, which is too strict for intake data.
	parsed, err := phonenumbers.Parse(e164, n.region)
	if err != nil {
		return "", fmt.Errorf("parse phone number: %w", err)
	}
	if !phonenumbers.IsPossibleNumber(parsed) {
		return "", fmt.Errorf("impossible phone number: %q", raw)
	}

	return e164, nil
}
