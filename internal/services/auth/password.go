package auth

import "unicode"

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// ValidatePasswordStrength checks the candidate against the policy: at least
// MinPasswordLength characters, with at least one uppercase letter, one
// lowercase letter and one decimal digit. There is no maximum length and no
// special-character requirement.
//
// Returns a *WeakPasswordError naming every failed rule, or nil.
func ValidatePasswordStrength(password string) error {
	var (
		reasons  []string
		hasUpper bool
		hasLower bool
		hasDigit bool
		length   int
	)

	for _, r := range password {
		length++
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if length < MinPasswordLength {
		reasons = append(reasons, "must be at least 8 characters")
	}
	if !hasUpper {
		reasons = append(reasons, "must contain an uppercase letter")
	}
	if !hasLower {
		reasons = append(reasons, "must contain a lowercase letter")
	}
	if !hasDigit {
		reasons = append(reasons, "must contain a digit")
	}

	if len(reasons) > 0 {
		return &WeakPasswordError{Reasons: reasons}
	}

	return nil
}
