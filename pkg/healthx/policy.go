package healthx

import (
	"errors"
	"strings"
	"unicode"
)

// ErrWeakPassword is wrapped by every PasswordPolicy rejection.
var ErrWeakPassword = errors.New("weak password")

// PasswordPolicy is the single strength rule used at registration and
// password change, on both the API and the client. Login never consults it.
type PasswordPolicy struct {
	MinLength int
	// Denylist entries are rejected when they appear anywhere in the
	// lowercased password.
	Denylist []string
}

// DefaultPasswordPolicy is the policy every entry point shares.
var DefaultPasswordPolicy = PasswordPolicy{
	MinLength: 8,
	Denylist:  []string{"123456", "password", "qwerty", "111111", "12345678", "123456789"},
}

// Check returns nil for acceptable passwords. Rejections are ValidationErrors
// that also match ErrWeakPassword.
func (p PasswordPolicy) Check(password string) error {
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r) && r < unicode.MaxASCII:
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	switch {
	case len([]rune(password)) < p.MinLength:
		return weak("password must be at least %d characters", p.MinLength)
	case !hasLetter:
		return weak("password must contain a letter")
	case !hasDigit:
		return weak("password must contain a digit")
	}

	lower := strings.ToLower(password)
	for _, banned := range p.Denylist {
		if strings.Contains(lower, banned) {
			return weak("password is too common")
		}
	}
	return nil
}

type weakPasswordError struct{ *ValidationError }

func (e weakPasswordError) Is(target error) bool {
	return target == ErrWeakPassword || target == ErrValidation
}

func (e weakPasswordError) Unwrap() error { return e.ValidationError }

func weak(format string, args ...any) error {
	return weakPasswordError{Invalid("password", format, args...)}
}

// NormalizeEmail trims and lowercases an address. Every comparison and
// lookup goes through it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// CheckEmail requires a non-empty address with an @ and a dot after it.
func CheckEmail(email string) error {
	email = NormalizeEmail(email)
	at := strings.LastIndex(email, "@")
	if email == "" {
		return Invalid("email", "email is required")
	}
	if at <= 0 || !strings.Contains(email[at:], ".") {
		return Invalid("email", "email is not valid")
	}
	return nil
}
