package users

import "errors"

var (
	// ErrNotFound is returned when no record matches the lookup key.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when a create collides with an existing email.
	ErrDuplicateEmail = errors.New("email already in use")
	// ErrInvalidCredentials covers both an unknown email and a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
