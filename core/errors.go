package core

import "errors"

var (
	// ErrAuthentication covers every login failure shown to the client:
	// bad signature, challenge mismatch, or a consumed/expired challenge.
	// Handlers must not reveal which check failed.
	ErrAuthentication = errors.New("authentication failed")

	// ErrUnsupportedChain is returned when no verifier is registered for a chain
	ErrUnsupportedChain = errors.New("unsupported chain")

	// ErrChallengeNotFound is returned when a challenge is unknown or already consumed
	ErrChallengeNotFound = errors.New("challenge not found")

	// ErrChallengeExpired is returned when a challenge has passed its expiry
	ErrChallengeExpired = errors.New("challenge has expired")

	// ErrInvalidSignature is returned when signature verification fails
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrInvalidToken is returned when a session token fails validation
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned when a session token has expired
	ErrTokenExpired = errors.New("token has expired")

	// ErrIdentityNotFound is returned when an identity lookup finds no row
	ErrIdentityNotFound = errors.New("identity not found")
)
