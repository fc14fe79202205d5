// Package guard decides whether a requested page may be rendered for the
// current session. It is a pure decision table over the session snapshot
// and the page's role requirement; translating decisions into HTTP
// redirects is the console's job.
package guard

import "github.com/Vicky-hu-coder/alx-console/session"

// Action is the kind of decision the guard produces.
type Action int

const (
	// Allow renders the requested page.
	Allow Action = iota
	// RedirectLogin sends an unauthenticated request to the login page.
	RedirectLogin
	// RedirectOTP sends a session with an outstanding OTP challenge to
	// the verification page, regardless of the requested destination.
	RedirectOTP
	// RedirectHome sends an authenticated user without the required role
	// to their own role's dashboard.
	RedirectHome
)

// Well-known destinations for redirect decisions.
const (
	LoginPath = "/login"
	OTPPath   = "/otp"
)

// Decision is the guard's verdict. Location is the redirect target and is
// empty only for Allow.
type Decision struct {
	Action   Action
	Location string
}

// Requirement declares which roles may view a page. A nil requirement (or
// an empty role set) means any established session is sufficient.
type Requirement struct {
	Roles []session.Role
}

// RequireRoles builds a Requirement for the given roles.
func RequireRoles(roles ...session.Role) *Requirement {
	return &Requirement{Roles: roles}
}

func (r *Requirement) allows(role session.Role) bool {
	if r == nil || len(r.Roles) == 0 {
		return true
	}
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Evaluate produces the decision for a protected page. The checks apply in
// a fixed order: identity present, OTP settled, role admitted.
func Evaluate(snap session.Snapshot, req *Requirement) Decision {
	if snap.Identity == nil {
		return Decision{Action: RedirectLogin, Location: LoginPath}
	}
	if snap.OTPPending {
		return Decision{Action: RedirectOTP, Location: OTPPath}
	}
	role := snap.Identity.ParsedRole()
	if !req.allows(role) {
		return Decision{Action: RedirectHome, Location: role.HomePath()}
	}
	return Decision{}
}

// HomeRedirect is the decision for the site root and the legacy bare paths
// (/dashboard, /customers, ...): route the user to their role's dashboard,
// or to login when no session exists. An outstanding OTP challenge still
// wins over the role mapping.
func HomeRedirect(snap session.Snapshot) Decision {
	if snap.Identity == nil {
		return Decision{Action: RedirectLogin, Location: LoginPath}
	}
	if snap.OTPPending {
		return Decision{Action: RedirectOTP, Location: OTPPath}
	}
	role := snap.Identity.ParsedRole()
	return Decision{Action: RedirectHome, Location: role.HomePath()}
}
