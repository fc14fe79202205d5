package auth

import "errors"

// ErrNoPendingLogin indicates OTP verification was attempted without a
// preceding login that required a second factor.
var ErrNoPendingLogin = errors.New("no login awaiting verification")

// APIError carries the human-readable message extracted from a failed
// backend call. Error() returns only the message so it can be shown to the
// operator unmodified.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}
