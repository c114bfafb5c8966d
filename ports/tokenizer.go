package ports

import "github.com/chainpost/vouch/core"

// Tokenizer mints and validates self-contained session credentials
type Tokenizer interface {
	// Issue mints a signed session token bound to the identity and wallet
	Issue(identity *core.Identity) (string, error)

	// Validate verifies the token signature and expiry and returns the
	// decoded credential. Fails with core.ErrInvalidToken or
	// core.ErrTokenExpired.
	Validate(token string) (*core.Credential, error)
}
