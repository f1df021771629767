package auth

import "errors"

var (
	// ErrInvalidOldPassword is returned when the provided old password does not match the current password.
	ErrInvalidOldPassword = errors.New("invalid old password")

	// ErrInvalidPassword is returned when the provided password is incorrect during authentication.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrUserNotFound is returned when no account has the given email.
	ErrUserNotFound = errors.New("user not found")

	// ErrRoleNotFound is returned when a user references a role that does not exist.
	ErrRoleNotFound = errors.New("role not found")

	// ErrNotStaff is returned when a customer token is presented to a staff only check.
	ErrNotStaff = errors.New("identity is not a staff user")

	// ErrNoSigningKey is returned by Sign when only the public key is loaded.
	ErrNoSigningKey = errors.New("no private key loaded, tokens can only be verified")

	// ErrMissingBearer is returned when the Authorization header carries no bearer token.
	ErrMissingBearer = errors.New("missing bearer token")
)

var (
	// ErrEmptyBootstrapPassword is returned by Bootstrap when no password for the super admin is configured.
	ErrEmptyBootstrapPassword = errors.New("bootstrap password is empty")

	// ErrAccountNotFound is returned when a token lookup matches no account.
	ErrAccountNotFound = errors.New("no account holds this token")
)
