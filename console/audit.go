package console

import (
	"log/slog"
	"net/http"
	"time"
)

// AuditEvent identifies the type of auth-relevant action being logged.
type AuditEvent string

const (
	AuditLoginSuccess       AuditEvent = "login_success"
	AuditLoginFailure       AuditEvent = "login_failure"
	AuditOTPChallenge       AuditEvent = "otp_challenge"
	AuditOTPVerified        AuditEvent = "otp_verified"
	AuditOTPFailure         AuditEvent = "otp_failure"
	AuditLogout             AuditEvent = "logout"
	AuditRegister           AuditEvent = "register"
	AuditPasswordResetAsked AuditEvent = "password_reset_requested"
	AuditPasswordReset      AuditEvent = "password_reset"
)

// auditLogger wraps slog.Logger for structured auth audit logging.
type auditLogger struct {
	logger *slog.Logger
}

func newAuditLogger(logger *slog.Logger) *auditLogger {
	return &auditLogger{logger: logger.With("component", "audit")}
}

// logEvent writes a structured audit entry. Only the email is recorded;
// passwords, codes and tokens never reach the log.
func (al *auditLogger) logEvent(event AuditEvent, r *http.Request, email string, attrs ...slog.Attr) {
	base := []slog.Attr{
		slog.String("event", string(event)),
		slog.String("remote_addr", r.RemoteAddr),
		slog.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
	}
	if email != "" {
		base = append(base, slog.String("email", email))
	}
	base = append(base, attrs...)
	al.logger.LogAttrs(r.Context(), slog.LevelInfo, "audit", base...)
}

// logFailure logs a failed auth attempt with its reason.
func (al *auditLogger) logFailure(event AuditEvent, r *http.Request, email, reason string) {
	al.logEvent(event, r, email, slog.String("reason", reason))
}
