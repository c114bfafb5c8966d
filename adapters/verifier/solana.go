package verifier

import (
	"crypto/ed25519"

	"github.com/mr-tron/base58"

	"github.com/chainpost/vouch/ports"
)

// SolanaVerifier verifies Ed25519 signatures against the address itself,
// since a Solana address is the base58-encoded public key.
type SolanaVerifier struct{}

// NewSolanaVerifier creates a verifier for Ed25519-family chains
func NewSolanaVerifier() ports.Verifier {
	return &SolanaVerifier{}
}

// Verify checks the base58-encoded signature over the raw message bytes
// using the public key decoded from the claimed address. Any decode or
// verification failure is a false result.
func (v *SolanaVerifier) Verify(message []byte, signature string, address string) bool {
	pubKey, err := base58.Decode(address)
	if err != nil || len(pubKey) != ed25519.PublicKeySize {
		return false
	}

	sig, err := base58.Decode(signature)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}

	return ed25519.Verify(ed25519.PublicKey(pubKey), message, sig)
}
