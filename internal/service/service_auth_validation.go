package service

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	namePattern  = regexp.MustCompile(`^[a-zA-Z\s\-'.]+$`)
)

// sanitized returns the input with display fields trimmed. Passwords are
// left untouched; leading or trailing spaces there are significant.
func (in RegisterInput) sanitized() RegisterInput {
	in.Email = strings.TrimSpace(in.Email)
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	return in
}

func validateRegisterInput(in RegisterInput, passwordMinLength int) error {
	if in.Email == "" || in.Password == "" || in.ConfirmPassword == "" || in.FirstName == "" || in.LastName == "" {
		return ErrInvalidDataProvided
	}

	if !validEmail(in.Email) {
		return ErrInvalidEmail
	}

	if in.Password != in.ConfirmPassword {
		return ErrPasswordsMismatch
	}

	if err := validatePassword(in.Password, passwordMinLength); err != nil {
		return err
	}

	return validateNames(in.FirstName, in.LastName)
}

func validEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// validatePassword enforces the strength rules: minimum length plus at least
// one uppercase letter, one lowercase letter and one digit. The first rule
// broken determines the returned error, so the caller can tell the user
// exactly what to fix.
func validatePassword(password string, minLength int) error {
	if len(password) < minLength {
		return ErrPasswordTooShort
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasUpper {
		return ErrPasswordNoUpper
	}
	if !hasLower {
		return ErrPasswordNoLower
	}
	if !hasDigit {
		return ErrPasswordNoDigit
	}

	return nil
}

func validateNames(firstName, lastName string) error {
	if len(firstName) < 2 || len(lastName) < 2 {
		return ErrNameTooShort
	}

	if !namePattern.MatchString(firstName) || !namePattern.MatchString(lastName) {
		return ErrNameInvalidChars
	}

	return nil
}
