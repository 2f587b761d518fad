package client

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Client-side validation mirrors the server rules so obviously bad input
// never leaves the process. The server still re-validates everything.

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// FieldErrors maps field names to human-readable messages.
type FieldErrors map[string][]string

func (fe FieldErrors) add(field, message string) {
	fe[field] = append(fe[field], message)
}

// Empty reports whether validation passed.
func (fe FieldErrors) Empty() bool {
	return len(fe) == 0
}

// First returns the first message for a field, or "" when the field passed.
func (fe FieldErrors) First(field string) string {
	if msgs, ok := fe[field]; ok && len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func validPhone(phone string) bool {
	return phonePattern.MatchString(phone)
}

// validPassword requires at least 8 characters with one upper, one lower and
// one digit.
func validPassword(password string) bool {
	if len(password) < 8 {
		return false
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
	return hasUpper && hasLower && hasDigit
}

func checkRequired(fe FieldErrors, field, value string) bool {
	if strings.TrimSpace(value) == "" {
		fe.add(field, fmt.Sprintf("%s is required", field))
		return false
	}
	return true
}

func checkMinLength(fe FieldErrors, field, value string, min int) {
	if checkRequired(fe, field, value) && len(value) < min {
		fe.add(field, fmt.Sprintf("%s must be at least %d characters", field, min))
	}
}

func checkEmail(fe FieldErrors, field, value string) {
	if checkRequired(fe, field, value) && !validEmail(value) {
		fe.add(field, fmt.Sprintf("%s must be a valid email address", field))
	}
}

func checkPhone(fe FieldErrors, field, value string) {
	if checkRequired(fe, field, value) && !validPhone(value) {
		fe.add(field, fmt.Sprintf("%s must be a valid phone number", field))
	}
}

func checkPassword(fe FieldErrors, field, value string) {
	if checkRequired(fe, field, value) && !validPassword(value) {
		fe.add(field, fmt.Sprintf("%s must be at least 8 characters with upper, lower and digit", field))
	}
}
