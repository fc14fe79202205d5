package session

import "strings"

// User is the authenticated identity as consumed by the console. The
// backend returns the bearer token alongside the user attributes on login;
// the token is held here for attachment to outgoing requests but is never
// included when the user record is persisted.
type User struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role,omitempty"`

	Token string `json:"-"`
}

// DisplayName returns a human-readable name for page headers, falling back
// to the email address when no name attributes are present.
func (u User) DisplayName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}

// ParsedRole returns the normalized role of the user.
func (u User) ParsedRole() Role {
	return ParseRole(u.Role)
}

// placeholder returns the partial identity held while an OTP challenge is
// outstanding. Only the email is known at that point; the OTP page needs it
// to tell the operator where the code was sent.
func placeholder(email string) *User {
	return &User{Email: email}
}
