// Package tokenizer implements session credentials as HMAC-signed JWTs.
package tokenizer

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/chainpost/vouch/core"
	"github.com/chainpost/vouch/ports"
)

// AudienceSession tags session tokens so other token kinds minted with the
// same secret can never pass session validation.
const AudienceSession = "vouch:session"

// JWTTokenizer implements the Tokenizer interface using HS256 JWTs signed
// with a process-wide secret. Rotating the secret invalidates all
// outstanding sessions.
type JWTTokenizer struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTTokenizer creates a new JWT tokenizer
func NewJWTTokenizer(secret []byte, ttl time.Duration) ports.Tokenizer {
	return &JWTTokenizer{secret: secret, ttl: ttl}
}

// Issue mints a signed session token bound to the identity and wallet
func (j *JWTTokenizer) Issue(identity *core.Identity) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.ID,
			ID:        uuid.NewString(),
			Audience:  jwt.ClaimStrings{AudienceSession},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
		},
		WalletAddress: identity.WalletAddress,
		WalletChain:   identity.Chain.String(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return signedToken, nil
}

// Validate verifies the token signature and expiry and returns the decoded
// credential
func (j *JWTTokenizer) Validate(tokenStr string) (*core.Credential, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	}, jwt.WithAudience(AudienceSession))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, core.ErrTokenExpired
		}
		return nil, core.ErrInvalidToken
	}

	if !token.Valid {
		return nil, core.ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, core.ErrInvalidToken
	}
	if claims.IssuedAt == nil || claims.ExpiresAt == nil || claims.Subject == "" {
		return nil, core.ErrInvalidToken
	}

	// The library already rejects expired tokens; check again so expiry is
	// enforced here even if parser options ever change.
	if time.Now().After(claims.ExpiresAt.Time) {
		return nil, core.ErrTokenExpired
	}

	return &core.Credential{
		IdentityID:    claims.Subject,
		WalletAddress: claims.WalletAddress,
		Chain:         core.Chain(claims.WalletChain),
		IssuedAt:      claims.IssuedAt.Time,
		ExpiresAt:     claims.ExpiresAt.Time,
	}, nil
}
