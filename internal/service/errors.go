package service

import "errors"

var (
	// ErrInvalidCredentials covers both unknown email and wrong password;
	// the two cases must stay indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrRevoked means a cryptographically valid refresh token no longer
	// matches the stored fingerprint (superseded login or logout).
	ErrRevoked = errors.New("refresh token revoked")

	ErrInvalidRefreshToken = errors.New("invalid refresh token")

	ErrValidation = errors.New("missing or invalid fields")

	ErrEmailTaken = errors.New("email already registered")

	ErrStoreUnavailable = errors.New("credential store unavailable")
)
