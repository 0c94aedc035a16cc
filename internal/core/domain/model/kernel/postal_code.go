package kernel

import (
	"fmt"
	"strings"

	"logistics/internal/pkg/errs"
)

// postalCodeLength is the number of digits in a Brazilian postal code (CEP).
const postalCodeLength = 8

// PostalCode is a value object holding a normalized Brazilian postal code.
// Construction strips any punctuation ("01310-100" and "01310100" are the
// same code) and rejects anything that is not exactly eight digits.
//
// The zero value is invalid; use NewPostalCode.
type PostalCode struct {
	digits string
}

// NewPostalCode normalizes and validates a raw postal code string.
// Non-digit characters are stripped before validation, so formatted input
// is accepted. Returns a validation error for empty or malformed input.
func NewPostalCode(raw string) (PostalCode, error) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := b.String()
	if len(digits) != postalCodeLength {
		return PostalCode{}, errs.NewValueIsInvalidErrorWithCause(
			"postalCode",
			fmt.Errorf("%q is not a valid %d-digit postal code", raw, postalCodeLength),
		)
	}

	return PostalCode{digits: digits}, nil
}

// String returns the bare eight-digit representation.
func (p PostalCode) String() string {
	return p.digits
}

// IsEqual compares two postal codes by their normalized digits.
func (p PostalCode) IsEqual(other PostalCode) bool {
	return p.digits == other.digits
}

// Validate checks that the postal code was constructed via NewPostalCode.
func (p PostalCode) Validate() error {
	if len(p.digits) != postalCodeLength {
		return errs.NewValueIsRequiredError("postalCode must be created via NewPostalCode")
	}
	return nil
}
