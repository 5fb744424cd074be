// Package validate holds the form rules checked before any auth request is
// built. Each function reports only the first rule that fails.
package validate

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf16"
)

const (
	MinPasswordLength = 8
	specialCharacters = "!@#$%^&*"
)

var emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,6}$`)

// Error is a failed form rule. Message is shown to the user verbatim.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func fail(field, message string) error {
	return &Error{Field: field, Message: message}
}

// Signup checks the signup form. The password rules run before the
// confirmation rules, so a weak password is reported even when the
// confirmation is missing.
func Signup(firstName, email, password, confirmPassword string) error {
	if err := SignupFields(firstName, email, password); err != nil {
		return err
	}
	if isBlank(confirmPassword) {
		return fail("confirmPassword", "Please confirm your password")
	}
	if password != confirmPassword {
		return fail("confirmPassword", "Passwords do not match")
	}
	return nil
}

// SignupFields runs the signup rules that do not involve the confirmation
// field. The dev backend uses it to re-validate incoming signups.
func SignupFields(firstName, email, password string) error {
	switch {
	case isBlank(firstName):
		return fail("firstName", "Please enter your name")
	case !emailPattern.MatchString(email):
		return fail("email", "Please enter a valid email")
	case passwordLength(password) < MinPasswordLength:
		return fail("password", "Password must be at least 8 characters")
	case !strings.ContainsFunc(password, unicode.IsUpper):
		return fail("password", "Password must contain at least 1 uppercase letter")
	case !strings.ContainsFunc(password, unicode.IsLower):
		return fail("password", "Password must contain at least 1 lowercase letter")
	case !strings.ContainsFunc(password, unicode.IsDigit):
		return fail("password", "Password must contain at least 1 number")
	case !strings.ContainsAny(password, specialCharacters):
		return fail("password", "Password must contain at least 1 special character")
	}
	return nil
}

// Login only checks presence; strength rules apply at signup.
func Login(email, password string) error {
	if isBlank(email) {
		return fail("email", "Email cannot be blank")
	}
	if isBlank(password) {
		return fail("password", "Password cannot be blank")
	}
	return nil
}

// passwordLength counts UTF-16 code units, so a character outside the
// Basic Multilingual Plane counts twice.
func passwordLength(password string) int {
	return len(utf16.Encode([]rune(password)))
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
