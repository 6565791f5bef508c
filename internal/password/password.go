// Package password implements the password acceptance policy and an advisory
// strength score. Validation collects every violated rule instead of failing
// on the first so all of them can be reported at once.
package password

import (
	"strings"
	"unicode/utf8"

	apperrors "blogapi/internal/errors"
)

const minLength = 8

// symbols is the punctuation set a password must draw at least one rune from.
const symbols = `!@#$%^&*(),.?":{}|<>`

// commonPasswords is a small deny-list checked case-insensitively.
var commonPasswords = []string{"password", "123456", "qwerty", "admin", "letmein"}

// Validate checks pw against the policy. On failure it returns a
// *apperrors.PasswordValidationError carrying every violated rule.
func Validate(pw string) error {
	var reasons []string

	// Length counts characters, not bytes.
	if utf8.RuneCountInString(pw) < minLength {
		reasons = append(reasons, "password must be at least 8 characters long")
	}
	var hasUpper, hasLower, hasDigit, hasSymbol bool
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		case strings.ContainsRune(symbols, r):
			hasSymbol = true
		}
	}
	if !hasUpper {
		reasons = append(reasons, "password must contain at least one uppercase letter")
	}
	if !hasLower {
		reasons = append(reasons, "password must contain at least one lowercase letter")
	}
	if !hasDigit {
		reasons = append(reasons, "password must contain at least one digit")
	}
	if !hasSymbol {
		reasons = append(reasons, "password must contain at least one special character (!@#$%^&*...)")
	}
	lower := strings.ToLower(pw)
	for _, common := range commonPasswords {
		if lower == common {
			reasons = append(reasons, "password is too common")
			break
		}
	}

	if len(reasons) > 0 {
		return &apperrors.PasswordValidationError{Reasons: reasons}
	}
	return nil
}

// Strength scores pw from 0 to 100. The score is advisory only and never
// gates acceptance.
func Strength(pw string) int {
	score := 0

	length := utf8.RuneCountInString(pw)
	if length >= 8 {
		score += 20
	}
	if length >= 12 {
		score += 10
	}
	if length >= 16 {
		score += 10
	}

	var hasUpper, hasLower, hasDigit, hasOther bool
	unique := make(map[rune]struct{}, length)
	for _, r := range pw {
		unique[r] = struct{}{}
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			hasDigit = true
		default:
			hasOther = true
		}
	}
	if hasUpper {
		score += 15
	}
	if hasLower {
		score += 15
	}
	if hasDigit {
		score += 15
	}
	if hasOther {
		score += 15
	}

	if length > 0 && float64(len(unique)) >= float64(length)*0.7 {
		score += 10
	}

	if score > 100 {
		score = 100
	}
	return score
}
