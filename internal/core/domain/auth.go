package domain

import (
	"net/mail"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// SessionTTL is how long an issued session token stays valid
const SessionTTL = 24 * time.Hour

const (
	minNameLength     = 2
	maxNameLength     = 50
	minPasswordLength = 6
)

var phonePattern = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// SignInRequest represents a sign-in attempt
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned after a successful sign-in
type AuthResponse struct {
	Token string    `json:"token"`
	User  *Customer `json:"user"`
}

// SignUpRequest represents a customer registration
type SignUpRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"date_of_birth" example:"1990-01-01"`
}

// Validate checks every field and returns a *ValidationError listing each
// failing field, or nil. The date of birth must fall strictly before the
// calendar day of now.
func (r SignUpRequest) Validate(now time.Time) error {
	fields := make(map[string]string)

	switch name := strings.TrimSpace(r.Name); {
	case name == "":
		fields["name"] = "Name is required"
	case utf8.RuneCountInString(r.Name) < minNameLength || utf8.RuneCountInString(r.Name) > maxNameLength:
		fields["name"] = "Name must be between 2 and 50 characters"
	}

	switch {
	case strings.TrimSpace(r.Email) == "":
		fields["email"] = "Email is required"
	case !isEmail(r.Email):
		fields["email"] = "Please provide a valid email address"
	}

	switch {
	case strings.TrimSpace(r.Password) == "":
		fields["password"] = "Password is required"
	case utf8.RuneCountInString(r.Password) < minPasswordLength:
		fields["password"] = "Password must be at least 6 characters long"
	}

	switch {
	case strings.TrimSpace(r.Phone) == "":
		fields["phone"] = "Phone number is required"
	case !phonePattern.MatchString(r.Phone):
		fields["phone"] = "Please provide a valid phone number"
	}

	if r.DateOfBirth == "" {
		fields["date_of_birth"] = "Date of birth is required"
	} else if dob, err := ParseDate(r.DateOfBirth); err != nil {
		fields["date_of_birth"] = "Date of birth must be a date in YYYY-MM-DD format"
	} else if !dob.Before(DateOf(now).Time) {
		fields["date_of_birth"] = "Date of birth must be in the past"
	}

	if ve := NewValidationError(fields); ve != nil {
		return ve
	}
	return nil
}

// isEmail accepts a bare address only, rejecting display-name forms
func isEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil {
		return false
	}
	return addr.Address == s && addr.Name == ""
}
