package auth

import (
	"context"
	"log/slog"

	"github.com/Vicky-hu-coder/alx-console/internal/util"
	"github.com/Vicky-hu-coder/alx-console/session"
)

// Outcome tells the caller what happened after a login-shaped operation so
// it can navigate accordingly.
type Outcome int

const (
	// OutcomeSuccess means a full session was established.
	OutcomeSuccess Outcome = iota
	// OutcomeOTPRequired means a second factor is outstanding; the caller
	// should send the user to the OTP page.
	OutcomeOTPRequired
)

// Flow orchestrates the auth API against the session store. It is the only
// component that mutates the store.
type Flow struct {
	client *Client
	store  *session.Store
	log    *slog.Logger
}

// FlowOption configures the Flow.
type FlowOption func(*Flow)

// WithLogger sets the structured logger for auth events.
func WithLogger(log *slog.Logger) FlowOption {
	return func(f *Flow) { f.log = log }
}

// NewFlow creates a Flow over the given client and store.
func NewFlow(client *Client, store *session.Store, opts ...FlowOption) *Flow {
	f := &Flow{client: client, store: store, log: slog.Default()}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Login authenticates with the backend. When the account requires a second
// factor the store records the OTP challenge and OutcomeOTPRequired is
// returned; otherwise the session is established directly. On failure the
// store is left exactly as it was.
func (f *Flow) Login(ctx context.Context, email, password string) (Outcome, error) {
	email = util.NormalizeEmail(email)

	res, err := f.client.Login(ctx, email, password)
	if err != nil {
		f.log.Info("login failed", "email", email, "error", err)
		return OutcomeSuccess, err
	}
	if res.OTPRequired {
		f.store.RecordOTPChallenge(email)
		f.log.Info("login requires otp", "email", email)
		return OutcomeOTPRequired, nil
	}
	if err := f.store.RecordLogin(res.User, res.Token); err != nil {
		return OutcomeSuccess, err
	}
	f.log.Info("login succeeded", "email", res.User.Email, "role", res.User.Role)
	return OutcomeSuccess, nil
}

// VerifyOTP completes a pending login with the emailed code. A failed
// verification leaves the pending state untouched so the user can retry;
// verification without a pending login fails fast with ErrNoPendingLogin.
func (f *Flow) VerifyOTP(ctx context.Context, code string) error {
	email := f.store.PendingEmail()
	if email == "" {
		return ErrNoPendingLogin
	}

	res, err := f.client.VerifyOTP(ctx, email, code)
	if err != nil {
		f.log.Info("otp verification failed", "email", email, "error", err)
		return err
	}
	if err := f.store.RecordLogin(res.User, res.Token); err != nil {
		return err
	}
	f.log.Info("otp verified", "email", res.User.Email, "role", res.User.Role)
	return nil
}

// Logout clears the session unconditionally. No backend call is made; the
// platform does not invalidate tokens server-side.
func (f *Flow) Logout() error {
	err := f.store.Clear()
	f.log.Info("logged out")
	return err
}

// Register creates a new account. Like Login, the backend may require an
// OTP verification step before the account is usable.
func (f *Flow) Register(ctx context.Context, reg Registration) (Outcome, error) {
	reg.Email = util.NormalizeEmail(reg.Email)

	res, err := f.client.Register(ctx, reg)
	if err != nil {
		return OutcomeSuccess, err
	}
	if res.OTPRequired {
		f.store.RecordOTPChallenge(reg.Email)
		f.log.Info("registration requires otp", "email", reg.Email)
		return OutcomeOTPRequired, nil
	}
	if res.Token != "" {
		if err := f.store.RecordLogin(res.User, res.Token); err != nil {
			return OutcomeSuccess, err
		}
	}
	f.log.Info("registered", "email", reg.Email)
	return OutcomeSuccess, nil
}

// CreateAccount registers an account on someone else's behalf, as the
// admin user page does. Unlike Register, the caller's own session is never
// touched: an otpRequired answer belongs to the new account, not to the
// administrator driving the form.
func (f *Flow) CreateAccount(ctx context.Context, reg Registration) error {
	reg.Email = util.NormalizeEmail(reg.Email)
	if _, err := f.client.Register(ctx, reg); err != nil {
		return err
	}
	f.log.Info("account created", "email", reg.Email, "role", reg.Role)
	return nil
}

// ForgotPassword asks the backend to email a reset link.
func (f *Flow) ForgotPassword(ctx context.Context, email string) error {
	return f.client.ForgotPassword(ctx, util.NormalizeEmail(email))
}

// ResetPassword sets a new password using the token from the reset link.
func (f *Flow) ResetPassword(ctx context.Context, token, password string) error {
	return f.client.ResetPassword(ctx, token, password)
}
