package user

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	phonePattern    = regexp.MustCompile(`^[0-9]{10,15}$`)
)

// validateSignup checks the signup input field by field and stops at the
// first violation, so the client always sees a single offending field.
func validateSignup(in SignupInput) error {
	// lengths are measured on the trimmed value so whitespace padding
	// cannot satisfy the minimum
	if n := utf8.RuneCountInString(strings.TrimSpace(in.FirstName)); n < 2 || n > 100 {
		return &ValidationError{Field: "first_name", Message: "first_name must be between 2 and 100 characters"}
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(in.LastName)); n < 2 || n > 100 {
		return &ValidationError{Field: "last_name", Message: "last_name must be between 2 and 100 characters"}
	}
	if n := len(in.Username); n < 3 || n > 50 || !usernamePattern.MatchString(in.Username) {
		return &ValidationError{Field: "username", Message: "username must be alphanumeric and between 3 and 50 characters"}
	}
	if in.PhoneNumber != nil && *in.PhoneNumber != "" && !phonePattern.MatchString(*in.PhoneNumber) {
		return &ValidationError{Field: "phone_number", Message: "phone_number must be between 10 and 15 digits"}
	}
	if in.Email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	// mail.ParseAddress alone also accepts display-name forms like
	// "Ada <ada@x.io>"; only a bare address is valid here
	if addr, err := mail.ParseAddress(in.Email); err != nil || addr.Address != in.Email {
		return &ValidationError{Field: "email", Message: "email must be a valid email address"}
	}
	if n := len(in.Password); n < 6 || n > 64 {
		return &ValidationError{Field: "password", Message: "password must be between 6 and 64 characters"}
	}
	return nil
}
