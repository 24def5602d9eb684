package auth

import "errors"

// Auth failures are the one place the engine surfaces errors to the caller;
// the messages are user-displayable.
var (
	ErrInvalidCredentials = errors.New("invalid credentials. Try: alex@example.com, sarah@example.com, emma@example.com")
	ErrWeakPassword       = errors.New("password must be at least 3 characters")
	ErrDuplicateUser      = errors.New("user with this email already exists")
)
