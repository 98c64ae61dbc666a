package services

import "errors"

// Error kinds surfaced by the service layer. Handlers map these onto HTTP
// statuses with errors.Is; nothing here is fatal to the process.
var (
	// ErrInvalidInput marks a client-correctable validation failure.
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateIdentity marks a username or email collision.
	ErrDuplicateIdentity = errors.New("duplicate identity")

	// ErrInvalidCredentials covers both unknown user and wrong password. The
	// two cases are deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound marks a missing record.
	ErrNotFound = errors.New("not found")

	// ErrInvalidToken marks a reset token with no matching user.
	ErrInvalidToken = errors.New("invalid or unknown reset token")

	// ErrTokenExpired marks a reset token found but past its expiry.
	ErrTokenExpired = errors.New("reset token expired")

	// ErrBackendUnavailable is the only infrastructure-fault kind. Raw store
	// errors never escape the service layer; retries belong to the caller.
	ErrBackendUnavailable = errors.New("backend unavailable")
)
