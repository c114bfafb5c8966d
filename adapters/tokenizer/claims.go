package tokenizer

import "github.com/golang-jwt/jwt/v5"

// SessionClaims combines standard claims with the wallet binding.
// The subject is the identity UUID.
type SessionClaims struct {
	jwt.RegisteredClaims
	WalletAddress string `json:"wallet_address"`
	WalletChain   string `json:"wallet_chain"`
}
