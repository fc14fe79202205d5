package console

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Vicky-hu-coder/alx-console/auth"
	"github.com/Vicky-hu-coder/alx-console/backend"
	"github.com/Vicky-hu-coder/alx-console/guard"
)

const minPasswordLen = 6

// loginPage handles GET /login. An already established session skips the
// form and goes straight to the role home.
func (c *Console) loginPage(w http.ResponseWriter, r *http.Request) {
	snap := c.store.Snapshot()
	if snap.Authenticated() {
		http.Redirect(w, r, snap.Identity.ParsedRole().HomePath(), http.StatusSeeOther)
		return
	}
	c.render(w, http.StatusOK, "login", pageData{Title: "Sign in"})
}

// login handles POST /login.
func (c *Console) login(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	password := r.FormValue("password")
	if email == "" || password == "" {
		c.render(w, http.StatusBadRequest, "login", pageData{
			Title: "Sign in",
			Error: "email and password are required",
		})
		return
	}

	outcome, err := c.flow.Login(r.Context(), email, password)
	if err != nil {
		c.audit.logFailure(AuditLoginFailure, r, email, err.Error())
		c.render(w, http.StatusOK, "login", pageData{
			Title: "Sign in",
			Error: err.Error(),
		})
		return
	}
	if outcome == auth.OutcomeOTPRequired {
		c.audit.logEvent(AuditOTPChallenge, r, email)
		http.Redirect(w, r, guard.OTPPath, http.StatusSeeOther)
		return
	}
	c.audit.logEvent(AuditLoginSuccess, r, email)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// otpPage handles GET /otp. Reaching it without a pending login sends the
// user back to sign in, mirroring the guard's decision table.
func (c *Console) otpPage(w http.ResponseWriter, r *http.Request) {
	snap := c.store.Snapshot()
	if !snap.OTPPending {
		http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
		return
	}
	c.render(w, http.StatusOK, "otp", pageData{
		Title: "Two-step verification",
		Data:  snap.PendingEmail,
	})
}

// verifyOTP handles POST /otp. A wrong code keeps the pending state so the
// user can retry.
func (c *Console) verifyOTP(w http.ResponseWriter, r *http.Request) {
	code := r.FormValue("code")
	email := c.store.PendingEmail()

	err := c.flow.VerifyOTP(r.Context(), code)
	if errors.Is(err, auth.ErrNoPendingLogin) {
		http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
		return
	}
	if err != nil {
		c.audit.logFailure(AuditOTPFailure, r, email, err.Error())
		c.render(w, http.StatusOK, "otp", pageData{
			Title: "Two-step verification",
			Error: err.Error(),
			Data:  email,
		})
		return
	}
	c.audit.logEvent(AuditOTPVerified, r, email)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// locationPicker carries the cascading location choices for the register
// form. Each selected level loads its children on the next render; the
// deepest selection becomes the submitted location.
type locationPicker struct {
	Provinces []backend.Location
	Districts []backend.Location
	Sectors   []backend.Location
	Cells     []backend.Location
	Villages  []backend.Location

	Province string
	District string
	Sector   string
	Cell     string
	Village  string
	Selected string
}

// locationChoices builds the picker from the request's current selection.
// The register page works without the backend; a failed lookup just leaves
// that level's choices empty.
func (c *Console) locationChoices(r *http.Request) locationPicker {
	pick := locationPicker{
		Province: r.FormValue("province"),
		District: r.FormValue("district"),
		Sector:   r.FormValue("sector"),
		Cell:     r.FormValue("cell"),
		Village:  r.FormValue("village"),
	}
	for _, selected := range []string{pick.Village, pick.Cell, pick.Sector, pick.District, pick.Province} {
		if selected != "" {
			pick.Selected = selected
			break
		}
	}

	ctx := r.Context()
	provinces, err := c.backend.LocationsByType(ctx, "PROVINCE")
	if err != nil {
		c.log.Warn("loading provinces failed", "error", err)
		return pick
	}
	pick.Provinces = provinces

	levels := []struct {
		selected string
		children *[]backend.Location
	}{
		{pick.Province, &pick.Districts},
		{pick.District, &pick.Sectors},
		{pick.Sector, &pick.Cells},
		{pick.Cell, &pick.Villages},
	}
	for _, level := range levels {
		id, err := strconv.ParseInt(level.selected, 10, 64)
		if err != nil || id == 0 {
			break
		}
		children, err := c.backend.LocationChildren(ctx, id)
		if err != nil {
			c.log.Warn("loading location children failed", "parent", id, "error", err)
			break
		}
		*level.children = children
	}
	return pick
}

// registerPage handles GET /register. Query parameters carry the location
// selection so the area dropdowns cascade without script.
func (c *Console) registerPage(w http.ResponseWriter, r *http.Request) {
	c.render(w, http.StatusOK, "register", pageData{
		Title: "Register",
		Data:  c.locationChoices(r),
	})
}

// register handles POST /register.
func (c *Console) register(w http.ResponseWriter, r *http.Request) {
	reg := auth.Registration{
		FirstName:  r.FormValue("firstName"),
		LastName:   r.FormValue("lastName"),
		Email:      r.FormValue("email"),
		Phone:      r.FormValue("phone"),
		LocationID: r.FormValue("locationId"),
		Password:   r.FormValue("password"),
		Role:       r.FormValue("role"),
	}
	if reg.Password != r.FormValue("confirmPassword") {
		c.render(w, http.StatusBadRequest, "register", pageData{
			Title: "Register",
			Error: "passwords do not match",
			Data:  c.locationChoices(r),
		})
		return
	}
	if len(reg.Password) < minPasswordLen {
		c.render(w, http.StatusBadRequest, "register", pageData{
			Title: "Register",
			Error: "password must be at least 6 characters",
			Data:  c.locationChoices(r),
		})
		return
	}

	outcome, err := c.flow.Register(r.Context(), reg)
	if err != nil {
		c.render(w, http.StatusOK, "register", pageData{
			Title: "Register",
			Error: err.Error(),
			Data:  c.locationChoices(r),
		})
		return
	}
	c.audit.logEvent(AuditRegister, r, reg.Email)
	if outcome == auth.OutcomeOTPRequired {
		http.Redirect(w, r, guard.OTPPath, http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
}

// forgotPasswordPage handles GET /forgot-password.
func (c *Console) forgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	c.render(w, http.StatusOK, "forgot_password", pageData{Title: "Forgot password"})
}

// forgotPassword handles POST /forgot-password.
func (c *Console) forgotPassword(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	if err := c.flow.ForgotPassword(r.Context(), email); err != nil {
		c.render(w, http.StatusOK, "forgot_password", pageData{
			Title: "Forgot password",
			Error: err.Error(),
		})
		return
	}
	c.audit.logEvent(AuditPasswordResetAsked, r, email)
	c.render(w, http.StatusOK, "forgot_password", pageData{
		Title:  "Forgot password",
		Notice: "If that account exists, a reset link is on its way.",
	})
}

// resetPasswordPage handles GET /reset-password?token=...
func (c *Console) resetPasswordPage(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	c.render(w, http.StatusOK, "reset_password", pageData{
		Title: "Reset password",
		Data:  token,
	})
}

// resetPassword handles POST /reset-password.
func (c *Console) resetPassword(w http.ResponseWriter, r *http.Request) {
	token := r.FormValue("token")
	password := r.FormValue("password")
	if password != r.FormValue("confirmPassword") {
		c.render(w, http.StatusBadRequest, "reset_password", pageData{
			Title: "Reset password",
			Error: "passwords do not match",
			Data:  token,
		})
		return
	}
	if len(password) < minPasswordLen {
		c.render(w, http.StatusBadRequest, "reset_password", pageData{
			Title: "Reset password",
			Error: "password must be at least 6 characters",
			Data:  token,
		})
		return
	}

	if err := c.flow.ResetPassword(r.Context(), token, password); err != nil {
		c.render(w, http.StatusOK, "reset_password", pageData{
			Title: "Reset password",
			Error: err.Error(),
			Data:  token,
		})
		return
	}
	c.audit.logEvent(AuditPasswordReset, r, "")
	http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
}

// logout handles POST /logout. Clearing an already empty session is fine.
func (c *Console) logout(w http.ResponseWriter, r *http.Request) {
	var email string
	if snap := c.store.Snapshot(); snap.Identity != nil {
		email = snap.Identity.Email
	}
	if err := c.flow.Logout(); err != nil {
		c.log.Error("clearing session failed", "error", err)
	}
	c.audit.logEvent(AuditLogout, r, email)
	http.Redirect(w, r, guard.LoginPath, http.StatusSeeOther)
}
