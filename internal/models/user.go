package models

import "strings"

// Identity represents the currently authenticated user.
// It never carries a credential; see Account for the roster entry.
type Identity struct {
	// ID is the unique identifier for the identity (UUID format).
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the user's contact address. Unique across the roster (case-sensitive).
	Email string `json:"email"`
}

// Account is a registered identity together with its credential.
// Accounts only live in the roster; they are stripped down to an Identity
// before leaving the sign-in/sign-up code paths.
type Account struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`

	// PasswordHash is the hashed credential. Never exposed outside the auth package.
	PasswordHash string `json:"passwordHash"`

	// CreatedAt is the Unix timestamp when the account was registered.
	CreatedAt int64 `json:"createdAt,omitempty"`
}

// Identity returns the account without its credential.
func (a Account) Identity() Identity {
	return Identity{ID: a.ID, Name: a.Name, Email: a.Email}
}

// ProfileFields is the editable part of an Identity.
type ProfileFields struct {
	Name  string
	Email string
}

// Validate checks the profile against the profile form rules.
func (p ProfileFields) Validate() error {
	var errs []FieldError
	if len(strings.TrimSpace(p.Name)) < 2 {
		errs = append(errs, FieldError{Field: "name", Message: "Name must be at least 2 characters"})
	}
	if !looksLikeEmail(p.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "Please enter a valid email address"})
	}
	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

// looksLikeEmail is a shape check only: one "@", a non-empty local part and
// a dotted domain with no whitespace.
func looksLikeEmail(s string) bool {
	if strings.ContainsAny(s, " \t\r\n") {
		return false
	}
	at := strings.Index(s, "@")
	if at < 1 || at != strings.LastIndex(s, "@") {
		return false
	}
	domain := s[at+1:]
	dot := strings.LastIndex(domain, ".")
	return dot > 0 && dot < len(domain)-1
}
