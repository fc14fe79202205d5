// Package session holds the console's authenticated-session state: who is
// logged in, whether an OTP challenge is outstanding, and the bearer token
// used for backend calls. The state survives restarts through a durable
// storage.Keeper; the in-memory view is the single source of truth while
// the process runs.
package session

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Vicky-hu-coder/alx-console/storage"
)

// Fixed keeper keys for the persisted session record.
const (
	tokenKey = "token"
	userKey  = "user"
)

// Snapshot is a consistent read view of the session state. Identity is nil
// before login, a placeholder carrying only the email while an OTP
// challenge is pending, and fully populated afterwards.
type Snapshot struct {
	Identity     *User
	OTPPending   bool
	PendingEmail string
}

// Authenticated reports whether a fully established identity is present.
func (s Snapshot) Authenticated() bool {
	return s.Identity != nil && !s.OTPPending
}

// Store is the single source of truth for the current session. It is safe
// for concurrent use; every mutation is written through to the keeper
// before the in-memory view changes, so observers never see a partially
// applied update.
type Store struct {
	mu     sync.RWMutex
	keeper storage.Keeper

	identity     *User
	otpPending   bool
	pendingEmail string
}

// NewStore creates an empty session store backed by the given keeper.
func NewStore(keeper storage.Keeper) *Store {
	return &Store{keeper: keeper}
}

// Initialize restores a previously persisted session. The identity is
// restored only when both the token and the user record are present; the
// token is not validated against the backend — a stale token surfaces as
// an authorization failure on the next API call, not here.
func (s *Store) Initialize() error {
	token, ok, err := s.keeper.Get(tokenKey)
	if err != nil {
		return fmt.Errorf("reading stored token: %w", err)
	}
	if !ok {
		return nil
	}
	data, ok, err := s.keeper.Get(userKey)
	if err != nil {
		return fmt.Errorf("reading stored user: %w", err)
	}
	if !ok {
		return nil
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		// Unreadable record: drop it and start unauthenticated.
		_ = s.keeper.Delete(tokenKey)
		_ = s.keeper.Delete(userKey)
		return nil
	}
	user.Token = string(token)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = &user
	s.otpPending = false
	s.pendingEmail = ""
	return nil
}

// RecordLogin establishes a fully authenticated session: the token and the
// user record (token excluded) are persisted, the identity is set, and any
// pending OTP state is cleared.
func (s *Store) RecordLogin(user User, token string) error {
	user.Token = token

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("encoding user record: %w", err)
	}
	if err := s.keeper.Put(tokenKey, []byte(token)); err != nil {
		return fmt.Errorf("persisting token: %w", err)
	}
	if err := s.keeper.Put(userKey, data); err != nil {
		return fmt.Errorf("persisting user record: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = &user
	s.otpPending = false
	s.pendingEmail = ""
	return nil
}

// RecordOTPChallenge marks the session as awaiting a one-time passcode for
// the given email. The identity becomes a placeholder carrying only that
// email so the OTP page can display it. Nothing is persisted: an OTP
// challenge does not survive a restart, the operator simply logs in again.
func (s *Store) RecordOTPChallenge(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = placeholder(email)
	s.otpPending = true
	s.pendingEmail = email
}

// Clear erases the durable record and resets the in-memory state. It is
// idempotent; clearing an already-empty store is a no-op.
func (s *Store) Clear() error {
	err := s.keeper.Delete(tokenKey)
	if err2 := s.keeper.Delete(userKey); err == nil {
		err = err2
	}

	s.mu.Lock()
	s.identity = nil
	s.otpPending = false
	s.pendingEmail = ""
	s.mu.Unlock()

	if err != nil {
		return fmt.Errorf("clearing session record: %w", err)
	}
	return nil
}

// Snapshot returns a consistent copy of the current session state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		OTPPending:   s.otpPending,
		PendingEmail: s.pendingEmail,
	}
	if s.identity != nil {
		u := *s.identity
		snap.Identity = &u
	}
	return snap
}

// Token returns the current bearer token, or "" when no authenticated
// session exists. Implements the backend client's token source.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.identity == nil || s.otpPending {
		return ""
	}
	return s.identity.Token
}

// PendingEmail returns the email of the login awaiting OTP verification,
// or "" when none is pending.
func (s *Store) PendingEmail() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.otpPending {
		return ""
	}
	return s.pendingEmail
}
