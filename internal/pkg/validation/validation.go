package validation

import (
	"regexp"
	"strings"
	"unicode"
)

// Addresses are opaque identifiers: 2-128 chars of letters, digits, '_', '-', ':' or '.'.
var addressRe = regexp.MustCompile(`^[A-Za-z0-9_\-:.]{2,128}$`)

// Symbols: 1-16 letters or digits.
var symbolRe = regexp.MustCompile(`^[A-Za-z0-9]{1,16}$`)

func IsValidAddress(addr string) bool {
	return addressRe.MatchString(addr)
}

func IsValidSymbol(symbol string) bool {
	return symbolRe.MatchString(symbol)
}

// IsValidSecret enforces:
// - at least 8 characters
// - contains at least one letter
// - contains at least one number
func IsValidSecret(secret string) bool {
	if len(secret) < 8 {
		return false
	}
	hasLetter, hasDigit := false, false
	for _, r := range secret {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// NormalizeAddress trims whitespace; addresses are case-sensitive.
func NormalizeAddress(addr string) string {
	return strings.TrimSpace(addr)
}
