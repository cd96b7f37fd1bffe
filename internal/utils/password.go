package utils

import (
	"errors"
	"unicode"
)

// StrengthLabels maps a 0-4 strength score to its display label.
var StrengthLabels = [5]string{"Weak", "Fair", "Good", "Strong", "Excellent"}

// PasswordStrength is the result of evaluating a candidate password.
type PasswordStrength struct {
	Score       int      `json:"score"`
	Label       string   `json:"label"`
	Suggestions []string `json:"suggestions"`
}

// EvaluatePasswordStrength scores a password 0-4, one point each for
// length >= 8, an uppercase letter, a digit, and a symbol. Suggestions
// name the unmet criteria.
func EvaluatePasswordStrength(password string) PasswordStrength {
	var hasUpper, hasDigit, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			hasSymbol = true
		}
	}

	score := 0
	var suggestions []string

	if len(password) >= 8 {
		score++
	} else {
		suggestions = append(suggestions, "use at least 8 characters")
	}
	if hasUpper {
		score++
	} else {
		suggestions = append(suggestions, "add an uppercase letter")
	}
	if hasDigit {
		score++
	} else {
		suggestions = append(suggestions, "add a digit")
	}
	if hasSymbol {
		score++
	} else {
		suggestions = append(suggestions, "add a symbol")
	}

	return PasswordStrength{
		Score:       score,
		Label:       StrengthLabels[score],
		Suggestions: suggestions,
	}
}

// ValidateStrongPassword rejects passwords scoring below 3.
func ValidateStrongPassword(password string) error {
	if s := EvaluatePasswordStrength(password); s.Score < 3 {
		return errors.New("password too weak: " + s.Label)
	}
	return nil
}
