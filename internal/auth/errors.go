// Package auth holds the authentication core: password hashing, token
// signing and verification, the session cookie and the request identity.
package auth

import "errors"

var (
	// ErrHashing is an infrastructure failure of the one-way hash step.
	ErrHashing = errors.New("password hashing failed")

	// ErrTokenInvalid covers malformed, mis-signed and expired tokens alike.
	ErrTokenInvalid = errors.New("invalid token")

	// ErrInvalidCredentials is the single login failure outcome for an unknown
	// email and for a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUnauthenticated means no identity was established for the request.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrAccessDenied means an identity was established but its role or
	// ownership does not admit the request.
	ErrAccessDenied = errors.New("access denied")
)
