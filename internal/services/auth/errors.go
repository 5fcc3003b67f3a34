package auth

import "errors"

var (
	ErrEmailTaken = errors.New("email is already registered")
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so responses do not reveal which accounts exist.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken covers every verification failure: bad signature,
	// unexpected signing method, expiry, missing subject, deleted user.
	ErrInvalidToken = errors.New("invalid or expired token")
)
