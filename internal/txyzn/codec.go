// Package txyzn encodes evaluated signals into the compact TXYZN code:
// one side letter (B/S/H), a three-letter strategy base naming the rule
// that fired, and a one-digit magnitude from 1 to 9. Example: BBRK9 is
// a strength-9 breakout buy.
package txyzn

import (
	"fmt"
	"regexp"

	"github.com/alphathia/hk-strategy-mvp-sub001/internal/errors"
)

// Side is the direction letter of a TXYZN code.
type Side byte

const (
	SideBuy  Side = 'B'
	SideSell Side = 'S'
	SideHold Side = 'H'
)

// String returns the side as a one-letter string.
func (s Side) String() string {
	return string(rune(s))
}

var codePattern = regexp.MustCompile(`^[BSH][A-Z]{3}[1-9]$`)

// Code is a validated 5-character TXYZN code.
type Code string

// Encode builds a TXYZN code from its parts. The base must be exactly
// three uppercase ASCII letters and the magnitude must lie in 1..9.
func Encode(side Side, base string, magnitude int) (Code, error) {
	if side != SideBuy && side != SideSell && side != SideHold {
		return "", errors.New(errors.ErrorCategoryFormat, "txyzn", "invalid side %q", string(rune(side)))
	}
	if magnitude < 1 || magnitude > 9 {
		return "", errors.New(errors.ErrorCategoryFormat, "txyzn", "magnitude %d out of range 1..9", magnitude)
	}
	if len(base) != 3 {
		return "", errors.New(errors.ErrorCategoryFormat, "txyzn", "base %q must be 3 letters", base)
	}
	for _, c := range base {
		if c < 'A' || c > 'Z' {
			return "", errors.New(errors.ErrorCategoryFormat, "txyzn", "base %q must be uppercase A-Z", base)
		}
	}
	return Code(fmt.Sprintf("%c%s%d", side, base, magnitude)), nil
}

// Decode splits a TXYZN code into side, strategy base and magnitude.
// Malformed codes fail loudly with a FORMAT error: a bad code in the
// wild means corrupted data, not a market condition.
func Decode(code string) (Side, string, int, error) {
	if !codePattern.MatchString(code) {
		return 0, "", 0, errors.New(errors.ErrorCategoryFormat, "txyzn", "malformed code %q", code)
	}
	side := Side(code[0])
	base := code[1:4]
	magnitude := int(code[4] - '0')
	return side, base, magnitude, nil
}

// Valid reports whether code matches the TXYZN format.
func Valid(code string) bool {
	return codePattern.MatchString(code)
}
