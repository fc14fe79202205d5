package session

import "strings"

// Role is the normalized role tag carried by an authenticated identity.
// The platform historically emitted both bare tags ("ADMIN") and
// Spring-Security-style prefixed tags ("ROLE_ADMIN"); ParseRole accepts
// either form so callers never compare raw strings.
type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
	RoleCustomer Role = "CUSTOMER"
	// RoleUnknown is returned for tags outside the known set. The guard
	// treats unknown roles as customers when choosing a home page.
	RoleUnknown Role = ""
)

const legacyRolePrefix = "ROLE_"

// ParseRole normalizes a raw role tag into the closed Role set.
func ParseRole(raw string) Role {
	tag := strings.ToUpper(strings.TrimSpace(raw))
	tag = strings.TrimPrefix(tag, legacyRolePrefix)
	switch tag {
	case "ADMIN":
		return RoleAdmin
	case "EMPLOYEE":
		return RoleEmployee
	case "CUSTOMER":
		return RoleCustomer
	default:
		return RoleUnknown
	}
}

// Is reports whether the raw tag normalizes to r.
func (r Role) Is(raw string) bool {
	return ParseRole(raw) == r
}

// HomePath returns the dashboard path users of this role land on.
// Admin is checked before employee; everything else falls through to the
// customer dashboard, matching the platform's historical behavior.
func (r Role) HomePath() string {
	switch r {
	case RoleAdmin:
		return "/admin/dashboard"
	case RoleEmployee:
		return "/employee/dashboard"
	default:
		return "/customer/dashboard"
	}
}
