package domain

import "strings"

// PhoneIndex reduces a dialed number to its search key: all non-digit
// characters are stripped, and a purely numeric remainder is cut down to its
// rightmost 10 digits. A remainder that is not purely numeric (which includes
// the empty string) is returned as-is. Deterministic and idempotent.
func PhoneIndex(number string) string {
	var b strings.Builder
	for _, r := range number {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if !isNumeric(strings.ReplaceAll(digits, "+", "")) {
		return digits
	}
	if len(digits) <= 10 {
		return digits
	}
	return digits[len(digits)-10:]
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
