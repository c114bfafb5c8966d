package core

import (
	"fmt"
	"time"
)

// Challenge represents a single-use authentication challenge
type Challenge struct {
	ID        string    // Unique identifier for the challenge
	Address   string    // Wallet address the challenge was issued for
	Chain     Chain     // Chain family of the wallet
	Nonce     string    // Random nonce to be signed
	IssuedAt  time.Time // When the challenge was created
	ExpiresAt time.Time // When the challenge expires
}

// Expired reports whether the challenge has passed its expiry.
func (c *Challenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}

// Message returns the exact text the wallet must sign for this challenge.
// It is a deterministic function of the nonce so the server never has to
// trust message bytes supplied by the client.
func (c *Challenge) Message() string {
	return fmt.Sprintf("Sign this message to authenticate with ChainPost.\n\nNonce: %s", c.Nonce)
}

// Identity represents a durable user record keyed by (address, chain)
type Identity struct {
	ID            string    // Stable identifier (UUID)
	WalletAddress string    // Wallet address that proved ownership
	Chain         Chain     // Chain family of the wallet
	DisplayName   string    // Optional display name, empty until set by profile management
	AvatarCID     string    // Optional avatar reference, empty until set by profile management
	CreatedAt     time.Time // When the identity was first created
	UpdatedAt     time.Time // Last profile update
}

// Credential is the decoded content of a validated session token
type Credential struct {
	IdentityID    string    // Subject of the session
	WalletAddress string    // Wallet bound to the session
	Chain         Chain     // Chain family of the wallet
	IssuedAt      time.Time // When the session was minted
	ExpiresAt     time.Time // When the session expires
}
